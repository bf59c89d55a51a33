// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Challenge
// and UserChallenge models. Completion relies on the (user_id, challenge_id)
// unique index so a double completion surfaces as ErrDuplicate.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

// CreateChallenge inserts a new challenge.
func CreateChallenge(ctx context.Context, db *gorm.DB, title, description string, points int) (*domain.Challenge, error) {
	c := &domain.Challenge{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Points:      points,
		Active:      true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetChallenge fetches a challenge by ID, or ErrNotFound.
func GetChallenge(ctx context.Context, db *gorm.DB, id string) (*domain.Challenge, error) {
	var c domain.Challenge
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListChallenges returns challenges ordered by creation time. When activeOnly
// is true, inactive challenges are filtered out (the user-facing view).
func ListChallenges(ctx context.Context, db *gorm.DB, activeOnly bool) ([]domain.Challenge, error) {
	var out []domain.Challenge
	q := db.WithContext(ctx).Order("created_at asc")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&out).Error
	return out, err
}

// SetChallengeActive toggles a challenge's visibility.
// Returns ErrNotFound when no row matches.
func SetChallengeActive(ctx context.Context, db *gorm.DB, id string, active bool) error {
	res := db.WithContext(ctx).
		Model(&domain.Challenge{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateUserChallenge records a completion. A second completion of the same
// challenge by the same user violates ux_user_challenge and is returned as
// ErrDuplicate.
func CreateUserChallenge(ctx context.Context, db *gorm.DB, userID, challengeID string) error {
	uc := &domain.UserChallenge{
		ID:          uuid.NewString(),
		UserID:      userID,
		ChallengeID: challengeID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(uc).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ListUserChallengeIDs returns the IDs of challenges the user has completed.
func ListUserChallengeIDs(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	var out []string
	err := db.WithContext(ctx).
		Model(&domain.UserChallenge{}).
		Where("user_id = ?", userID).
		Pluck("challenge_id", &out).Error
	return out, err
}
