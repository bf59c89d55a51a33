// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Level model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

// ListLevels returns the level ladder ordered by MinPoints ascending.
func ListLevels(ctx context.Context, db *gorm.DB) ([]domain.Level, error) {
	var out []domain.Level
	err := db.WithContext(ctx).Order("min_points asc").Find(&out).Error
	return out, err
}

// LevelForPoints returns the highest level whose threshold the given points
// reach, or ErrNotFound when the ladder is empty or points sit below the
// lowest threshold.
func LevelForPoints(ctx context.Context, db *gorm.DB, points int) (*domain.Level, error) {
	var lvl domain.Level
	err := db.WithContext(ctx).
		Where("min_points <= ?", points).
		Order("min_points desc").
		First(&lvl).Error
	if err != nil {
		return nil, err
	}
	return &lvl, nil
}
