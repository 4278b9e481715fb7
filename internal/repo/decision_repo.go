// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the append-only
// Decision audit trail.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/domain"
)

// CreateDecision appends an admin decision row for requestID. The ID is a
// randomly generated UUID and CreatedAt is set to UTC.
func CreateDecision(ctx context.Context, db *gorm.DB, requestID, action, note string) (*domain.Decision, error) {
	d := &domain.Decision{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Action:    action,
		Note:      note,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// ListDecisions returns the decision history for a request, oldest first.
func ListDecisions(ctx context.Context, db *gorm.DB, requestID string) ([]domain.Decision, error) {
	var out []domain.Decision
	err := db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}
