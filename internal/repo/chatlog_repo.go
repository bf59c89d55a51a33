// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the ChatLog
// model, which records every chat turn and any feedback attached to it.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

// CreateChatLog inserts one chat turn for the user.
func CreateChatLog(ctx context.Context, db *gorm.DB, userID, query, response string, rich bool, faqID *string) (*domain.ChatLog, error) {
	l := &domain.ChatLog{
		ID:        uuid.NewString(),
		UserID:    userID,
		Query:     query,
		Response:  response,
		Rich:      rich,
		FAQID:     faqID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(l).Error; err != nil {
		return nil, err
	}
	return l, nil
}

// GetChatLog fetches a chat turn by ID scoped to its owner, or ErrNotFound.
func GetChatLog(ctx context.Context, db *gorm.DB, id, userID string) (*domain.ChatLog, error) {
	var l domain.ChatLog
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&l).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListChatLogs returns the user's chat turns ordered deterministically
// (CreatedAt ASC, ID ASC). A limit of 0 returns everything.
func ListChatLogs(ctx context.Context, db *gorm.DB, userID string, limit int) ([]domain.ChatLog, error) {
	var out []domain.ChatLog
	q := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// SetChatFeedback attaches a verdict to a chat turn owned by userID.
// Returns ErrNotFound when the turn is missing or belongs to someone else.
func SetChatFeedback(ctx context.Context, db *gorm.DB, id, userID, verdict string) error {
	res := db.WithContext(ctx).
		Model(&domain.ChatLog{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("feedback", verdict)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
