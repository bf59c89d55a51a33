// Package services – GamificationService
//
// This file implements the points economy: challenge completion with
// duplicate protection, level resolution, the individual ranking, and team
// management with the aggregated team ranking.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/repo"
)

// GamificationService owns challenges, points, levels, and teams.
type GamificationService struct {
	DB *gorm.DB
}

// NewGamificationService constructs a GamificationService.
func NewGamificationService(db *gorm.DB) *GamificationService {
	return &GamificationService{DB: db}
}

// CompleteChallenge records a completion and credits the challenge's points
// in one transaction. Repeating a challenge maps to ErrChallengeDone; the
// unique index makes the check race-safe.
func (s *GamificationService) CompleteChallenge(ctx context.Context, userID, challengeID string) (*domain.Challenge, error) {
	ch, err := repo.GetChallenge(ctx, s.DB, challengeID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	if !ch.Active {
		return nil, ErrChallengeInactive
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateUserChallenge(ctx, tx, userID, challengeID); err != nil {
			return err
		}
		return repo.AddPoints(ctx, tx, userID, ch.Points)
	})
	switch {
	case errors.Is(err, repo.ErrDuplicate):
		return nil, ErrChallengeDone
	case errors.Is(err, repo.ErrNotFound):
		return nil, ErrUserNotFound
	case err != nil:
		return nil, err
	}
	return ch, nil
}

// Challenges lists challenges; user views get only active ones.
func (s *GamificationService) Challenges(ctx context.Context, activeOnly bool) ([]domain.Challenge, error) {
	return repo.ListChallenges(ctx, s.DB, activeOnly)
}

// CompletedIDs returns the challenge ids the user already finished.
func (s *GamificationService) CompletedIDs(ctx context.Context, userID string) ([]string, error) {
	return repo.ListUserChallengeIDs(ctx, s.DB, userID)
}

// CreateChallenge adds a new (active) challenge.
func (s *GamificationService) CreateChallenge(ctx context.Context, title, description string, points int) (*domain.Challenge, error) {
	if points < 0 {
		return nil, errors.New("points must be >= 0")
	}
	return repo.CreateChallenge(ctx, s.DB, title, description, points)
}

// SetChallengeActive toggles a challenge's visibility.
func (s *GamificationService) SetChallengeActive(ctx context.Context, id string, active bool) error {
	err := repo.SetChallengeActive(ctx, s.DB, id, active)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrChallengeNotFound
	}
	return err
}

// RankedUser is one row of the individual ranking.
type RankedUser struct {
	Position int    `json:"position"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Level    string `json:"level"`
}

// Ranking returns users ordered by points with their level names resolved.
// A limit of 0 returns everyone.
func (s *GamificationService) Ranking(ctx context.Context, limit int) ([]RankedUser, error) {
	users, err := repo.ListUsersByPoints(ctx, s.DB, limit)
	if err != nil {
		return nil, err
	}
	ladder, err := repo.ListLevels(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	out := make([]RankedUser, len(users))
	for i, u := range users {
		out[i] = RankedUser{
			Position: i + 1,
			ID:       u.ID,
			Name:     u.Name,
			Points:   u.Points,
			Level:    levelName(ladder, u.Points),
		}
	}
	return out, nil
}

// levelName picks the highest ladder entry the points reach. The ladder is
// ordered by MinPoints ascending.
func levelName(ladder []domain.Level, points int) string {
	name := ""
	for _, l := range ladder {
		if points >= l.MinPoints {
			name = l.Name
		}
	}
	return name
}

// LevelFor resolves a user's current level.
func (s *GamificationService) LevelFor(ctx context.Context, userID string) (*domain.Level, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	lvl, err := repo.LevelForPoints(ctx, s.DB, u.Points)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, nil
	}
	return lvl, err
}

// Levels returns the full ladder.
func (s *GamificationService) Levels(ctx context.Context) ([]domain.Level, error) {
	return repo.ListLevels(ctx, s.DB)
}

// CreateTeam adds a team.
func (s *GamificationService) CreateTeam(ctx context.Context, name string) (*domain.Team, error) {
	return repo.CreateTeam(ctx, s.DB, name)
}

// Teams lists all teams.
func (s *GamificationService) Teams(ctx context.Context) ([]domain.Team, error) {
	return repo.ListTeams(ctx, s.DB)
}

// JoinTeam assigns the user to a team after checking it exists.
func (s *GamificationService) JoinTeam(ctx context.Context, userID, teamID string) error {
	if _, err := repo.GetTeam(ctx, s.DB, teamID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTeamNotFound
		}
		return err
	}
	err := repo.SetTeam(ctx, s.DB, userID, &teamID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// TeamRanking returns teams ordered by summed member points.
func (s *GamificationService) TeamRanking(ctx context.Context) ([]repo.TeamScore, error) {
	return repo.TeamRanking(ctx, s.DB)
}
