// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Team model
// and the aggregated team ranking.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

// TeamScore is one row of the team ranking: a team plus the summed points of
// its members. Computed on read, never stored.
type TeamScore struct {
	TeamID  string `json:"team_id"`
	Name    string `json:"name"`
	Members int    `json:"members"`
	Points  int    `json:"points"`
}

// CreateTeam inserts a new team. Duplicate names surface as a
// unique-constraint error.
func CreateTeam(ctx context.Context, db *gorm.DB, name string) (*domain.Team, error) {
	t := &domain.Team{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// GetTeam fetches a team by ID, or ErrNotFound.
func GetTeam(ctx context.Context, db *gorm.DB, id string) (*domain.Team, error) {
	var t domain.Team
	if err := db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTeams returns all teams ordered by name.
func ListTeams(ctx context.Context, db *gorm.DB) ([]domain.Team, error) {
	var out []domain.Team
	err := db.WithContext(ctx).Order("name asc").Find(&out).Error
	return out, err
}

// TeamRanking returns every team with its member count and summed points,
// ordered by points descending then name ascending. Teams with no members
// appear with zero points.
func TeamRanking(ctx context.Context, db *gorm.DB) ([]TeamScore, error) {
	var out []TeamScore
	err := db.WithContext(ctx).
		Table("teams").
		Select("teams.id AS team_id, teams.name AS name, COUNT(users.id) AS members, COALESCE(SUM(users.points), 0) AS points").
		Joins("LEFT JOIN users ON users.team_id = teams.id AND users.deleted_at IS NULL").
		Where("teams.deleted_at IS NULL").
		Group("teams.id, teams.name").
		Order("points desc, name asc").
		Scan(&out).Error
	return out, err
}
