// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// InsuranceRequest model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a request is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Duplicate submitter phones surface as ErrDuplicatePhone, mapped from
//     the driver's unique-constraint violation at INSERT time. The insert
//     itself is the duplicate check; there is no read-before-write window.
//   - Status transitions are conditional UPDATEs ("... WHERE id = ? AND
//     status = ?"); a transition whose precondition no longer holds returns
//     ErrStaleStatus so racing admin actions observe a conflict instead of
//     double-processing.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicatePhone is returned when an insert collides with the unique
// submitter-phone index.
var ErrDuplicatePhone = errors.New("phone already has a request")

// ErrStaleStatus is returned when a conditional status transition matched no
// row because the stored status differs from the expected precondition.
var ErrStaleStatus = errors.New("request status changed concurrently")

// CreateRequest inserts a new request row. The ID is a randomly generated
// UUID and CreatedAt is set to UTC. The unique index on phone is the single
// source of truth for duplicate detection: a colliding insert returns
// ErrDuplicatePhone and leaves the existing row untouched.
func CreateRequest(ctx context.Context, db *gorm.DB, r *domain.InsuranceRequest) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			return ErrDuplicatePhone
		}
		return err
	}
	return nil
}

// GetRequest fetches a single request by ID, or ErrNotFound if missing.
func GetRequest(ctx context.Context, db *gorm.DB, id string) (*domain.InsuranceRequest, error) {
	var r domain.InsuranceRequest
	if err := db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRequestByPhone fetches a single request by its normalized submitter
// phone, or ErrNotFound if missing.
func GetRequestByPhone(ctx context.Context, db *gorm.DB, phone string) (*domain.InsuranceRequest, error) {
	var r domain.InsuranceRequest
	if err := db.WithContext(ctx).Where("phone = ?", phone).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// ListPending returns every request still awaiting verification, newest
// submission first.
func ListPending(ctx context.Context, db *gorm.DB) ([]domain.InsuranceRequest, error) {
	var out []domain.InsuranceRequest
	err := db.WithContext(ctx).
		Where("status = ?", domain.StatusPending).
		Order("submitted_at desc").
		Find(&out).Error
	return out, err
}

// ListRequestsPage returns a filtered, paginated slice of requests ordered by
// submission time descending. An empty status matches all statuses. Use
// CountRequests to obtain the total for pagination metadata.
func ListRequestsPage(ctx context.Context, db *gorm.DB, status string, offset, limit int) ([]domain.InsuranceRequest, error) {
	var out []domain.InsuranceRequest
	q := db.WithContext(ctx).Model(&domain.InsuranceRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("submitted_at desc").Offset(offset).Limit(limit).Find(&out).Error
	return out, err
}

// CountRequests returns the total number of requests matching status
// (all statuses when empty).
func CountRequests(ctx context.Context, db *gorm.DB, status string) (int64, error) {
	var total int64
	q := db.WithContext(ctx).Model(&domain.InsuranceRequest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&total).Error
	return total, err
}

// TransitionStatus atomically moves a request from expected status to the
// given target, applying updates in the same UPDATE statement. When no row
// matches, it distinguishes a missing request (ErrNotFound) from a stale
// precondition (ErrStaleStatus) with a follow-up existence probe.
//
// updates must not contain "status"; the target status is set here.
func TransitionStatus(ctx context.Context, db *gorm.DB, id, expected, target string, updates map[string]any) error {
	set := map[string]any{"status": target, "updated_at": time.Now().UTC()}
	for k, v := range updates {
		set[k] = v
	}
	res := db.WithContext(ctx).
		Model(&domain.InsuranceRequest{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(set)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := db.WithContext(ctx).
			Model(&domain.InsuranceRequest{}).
			Where("id = ?", id).
			Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrStaleStatus
	}
	return nil
}

// AttachInvoicePDF stores the public location of the rendered invoice on an
// approved request. This is the only mutation permitted on a terminal row.
func AttachInvoicePDF(ctx context.Context, db *gorm.DB, id, pdfURL string) error {
	res := db.WithContext(ctx).
		Model(&domain.InsuranceRequest{}).
		Where("id = ? AND status = ?", id, domain.StatusApproved).
		Update("invoice_pdf", pdfURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// isDuplicate detects unique-constraint violations across drivers that may
// not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
