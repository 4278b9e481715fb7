// Package services – RequestService
//
// This file implements RequestService, the application-level component that
// owns insurance-request intake and read paths. It validates webhook input,
// computes the provisional premium, and relies on the store's unique phone
// index for duplicate detection: the INSERT itself is the duplicate check, so
// two near-simultaneous submissions can never both create a row.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/domain"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/premium"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/repo"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/utils"
)

// RequestService coordinates request intake and retrieval.
type RequestService struct {
	DB *gorm.DB
}

// SubmitInput carries the validated-but-untrusted fields of a webhook
// submission. Phone may still contain formatting; it is normalized here.
type SubmitInput struct {
	Phone       string
	SubmittedAt time.Time // zero means "now"
	FarmerName  string
	ItemName    string
	Origin      string
	Destination string
	VehicleNo   string
	ImageURL    string
	Quantity    int
	Rate        decimal.Decimal
	Consent     bool
}

// Submit validates input, computes the provisional premium, and persists the
// request in PENDING_VERIFICATION.
//
// Validation order matters: consent and field checks happen before any store
// access, and the duplicate check is the atomic insert itself. On collision
// the existing row is loaded and returned inside *DuplicateRequestError so
// the caller can report its identity and state.
func (s *RequestService) Submit(ctx context.Context, in SubmitInput) (*domain.InsuranceRequest, error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "Submit")
	defer span.End()

	if !in.Consent {
		return nil, ErrConsentRequired
	}
	phone := utils.NormalizePhone(in.Phone)
	if phone == "" {
		return nil, ErrInvalidPhone
	}
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if in.ItemName == "" {
		return nil, ErrInvalidItem
	}
	span.SetAttributes(attribute.String("request.phone_suffix", phoneSuffix(phone)))

	submittedAt := in.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}

	r := &domain.InsuranceRequest{
		Phone:       phone,
		SubmittedAt: submittedAt,
		FarmerName:  in.FarmerName,
		ItemName:    in.ItemName,
		Origin:      in.Origin,
		Destination: in.Destination,
		VehicleNo:   in.VehicleNo,
		ImageURL:    in.ImageURL,
		Quantity:    in.Quantity,
		Rate:        in.Rate,
		Consent:     true,
		Status:      domain.StatusPending,
		Premium:     premium.Compute(in.Quantity, in.Rate),
	}

	if err := repo.CreateRequest(ctx, s.DB, r); err != nil {
		if errors.Is(err, repo.ErrDuplicatePhone) {
			existing, lerr := repo.GetRequestByPhone(ctx, s.DB, phone)
			if lerr != nil {
				// Row vanished between insert and lookup; surface the original
				// conflict rather than the lookup error.
				return nil, &DuplicateRequestError{}
			}
			return nil, &DuplicateRequestError{ID: existing.ID, Status: existing.Status}
		}
		return nil, err
	}
	requestsSubmitted.Inc()
	return r, nil
}

// Get returns the full request with its decision history, or
// ErrRequestNotFound.
func (s *RequestService) Get(ctx context.Context, id string) (*domain.InsuranceRequest, []domain.Decision, error) {
	tr := otel.Tracer("services/RequestService")
	ctx, span := tr.Start(ctx, "Get", trace.WithAttributes(attribute.String("request.id", id)))
	defer span.End()

	r, err := repo.GetRequest(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrRequestNotFound
		}
		return nil, nil, err
	}
	decisions, err := repo.ListDecisions(ctx, s.DB, id)
	if err != nil {
		return nil, nil, err
	}
	return r, decisions, nil
}

// StatusByPhone returns the request for a normalized submitter phone, or
// ErrRequestNotFound. The handler projects it down to status-facing fields.
func (s *RequestService) StatusByPhone(ctx context.Context, phone string) (*domain.InsuranceRequest, error) {
	normalized := utils.NormalizePhone(phone)
	if normalized == "" {
		return nil, ErrRequestNotFound
	}
	r, err := repo.GetRequestByPhone(ctx, s.DB, normalized)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return r, nil
}

// ListPending returns every request awaiting verification, newest first.
func (s *RequestService) ListPending(ctx context.Context) ([]domain.InsuranceRequest, error) {
	return repo.ListPending(ctx, s.DB)
}

// ListByStatus returns a filtered page plus the matching total. An empty
// status matches everything; an unknown status yields ErrInvalidStatus.
func (s *RequestService) ListByStatus(ctx context.Context, status string, offset, limit int) ([]domain.InsuranceRequest, int64, error) {
	switch status {
	case "", domain.StatusPending, domain.StatusApproved, domain.StatusRejected:
	default:
		return nil, 0, ErrInvalidStatus
	}
	items, err := repo.ListRequestsPage(ctx, s.DB, status, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := repo.CountRequests(ctx, s.DB, status)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// phoneSuffix returns the last four digits for low-cardinality span tagging
// without recording the full number.
func phoneSuffix(phone string) string {
	if len(phone) <= 4 {
		return phone
	}
	return phone[len(phone)-4:]
}
