// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Ticket
// model, including the conditional close used by the chat command.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlexandreCalmonJr/service-desk-chat-moderno-sub000/internal/domain"
)

// CreateTicket inserts a new open ticket with the given numeric code.
func CreateTicket(ctx context.Context, db *gorm.DB, code int, title string) (*domain.Ticket, error) {
	t := &domain.Ticket{
		ID:        uuid.NewString(),
		Code:      code,
		Title:     title,
		Status:    domain.TicketOpen,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(t).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return t, nil
}

// GetTicketByCode fetches a ticket by its numeric code, or ErrNotFound.
func GetTicketByCode(ctx context.Context, db *gorm.DB, code int) (*domain.Ticket, error) {
	var t domain.Ticket
	if err := db.WithContext(ctx).Where("code = ?", code).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// CloseTicketByCode transitions a ticket from open to closed in a single
// conditional UPDATE so that concurrent closes of the same ticket produce
// exactly one success. RowsAffected distinguishes the outcomes:
//
//   - closed=true,  err=nil: this call performed the transition
//   - closed=false, err=nil: the ticket exists but was already closed
//   - err=ErrNotFound:       no ticket with that code
func CloseTicketByCode(ctx context.Context, db *gorm.DB, code int) (closed bool, err error) {
	res := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("code = ? AND status = ?", code, domain.TicketOpen).
		Updates(map[string]any{"status": domain.TicketClosed, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 1 {
		return true, nil
	}

	// No row transitioned: either already closed or missing.
	var n int64
	if err := db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("code = ?", code).
		Count(&n).Error; err != nil {
		return false, err
	}
	if n == 0 {
		return false, ErrNotFound
	}
	return false, nil
}

// ListTickets returns tickets ordered by code ascending. An optional status
// filter ("aberto"/"encerrado") narrows the result.
func ListTickets(ctx context.Context, db *gorm.DB, status string) ([]domain.Ticket, error) {
	var out []domain.Ticket
	q := db.WithContext(ctx).Order("code asc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&out).Error
	return out, err
}
