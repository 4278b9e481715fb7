// Package services – DecisionService
//
// This file implements DecisionService, which governs the lifecycle
// transition of a request out of PENDING_VERIFICATION. The transition is a
// conditional UPDATE: it succeeds only while the stored status still equals
// the expected precondition, so racing admin actions resolve to exactly one
// winner and the losers observe ErrAlreadyDecided.
//
// The post-commit side effects of approval (invoice rendering, notification)
// and of rejection (notification) are best effort: they run after the state
// is committed, on a context detached from the caller's cancellation, and
// their failures are logged and counted but never unwind the transition or
// surface to the API client.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/domain"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/invoice"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/premium"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/repo"
)

// Rejection reasons must be substantial enough to be actionable.
const (
	minReasonLen = 10
	maxReasonLen = 500
)

// Renderer produces the invoice artifact for an approved request and returns
// the written file path.
type Renderer interface {
	Render(req *domain.InsuranceRequest, invoiceNo string, prem decimal.Decimal) (string, error)
}

// Notifier delivers outcome messages to the submitter.
type Notifier interface {
	SendApproval(ctx context.Context, phone, invoiceNo string, prem decimal.Decimal, paymentLink string) error
	SendRejection(ctx context.Context, phone, reason string) error
}

// DecisionService implements the admin approve/reject use-cases.
type DecisionService struct {
	DB       *gorm.DB
	Invoices *invoice.NumberGenerator
	Renderer Renderer
	Notifier Notifier

	// PublicBaseURL prefixes the generated payment link and the attached
	// invoice PDF location.
	PublicBaseURL string
}

// Approve finalizes a pending request: it assigns a unique invoice number,
// finalizes the premium, generates the placeholder payment link, and commits
// the APPROVED state together with the audit row in one transaction. The
// conditional transition guarantees a racing second approval fails with
// ErrAlreadyDecided instead of double-processing.
//
// After the commit, the invoice is rendered and the submitter notified; both
// are independently failable and never roll back the approval.
func (s *DecisionService) Approve(ctx context.Context, id, note string) (*domain.InsuranceRequest, error) {
	tr := otel.Tracer("services/DecisionService")
	ctx, span := tr.Start(ctx, "Approve", trace.WithAttributes(attribute.String("request.id", id)))
	defer span.End()

	r, err := repo.GetRequest(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	// Reuse the stored provisional premium when present, recompute only when
	// it is absent, then re-clamp either way.
	finalPremium := s.finalPremium(r)
	invoiceNo := s.Invoices.Next()
	paymentLink := s.PublicBaseURL + "/pay/" + invoiceNo

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if terr := repo.TransitionStatus(ctx, tx, id, domain.StatusPending, domain.StatusApproved, map[string]any{
			"premium":        finalPremium,
			"invoice_no":     invoiceNo,
			"payment_link":   paymentLink,
			"payment_status": domain.PaymentPending,
		}); terr != nil {
			return terr
		}
		_, derr := repo.CreateDecision(ctx, tx, id, domain.ActionApprove, note)
		return derr
	})
	if err != nil {
		return nil, mapTransitionErr(err)
	}
	requestsDecided.WithLabelValues(domain.ActionApprove).Inc()

	r.Status = domain.StatusApproved
	r.Premium = finalPremium
	r.InvoiceNo = invoiceNo
	r.PaymentLink = paymentLink
	r.PaymentStatus = domain.PaymentPending

	s.afterApprove(context.WithoutCancel(ctx), r)
	return r, nil
}

// Reject moves a pending request to REJECTED with the given reason. The
// reason is validated before any store access. Notification is
// fire-and-forget, exactly as on the approval path.
func (s *DecisionService) Reject(ctx context.Context, id, reason string) (*domain.InsuranceRequest, error) {
	tr := otel.Tracer("services/DecisionService")
	ctx, span := tr.Start(ctx, "Reject", trace.WithAttributes(attribute.String("request.id", id)))
	defer span.End()

	reason = strings.TrimSpace(reason)
	if n := len(reason); n < minReasonLen || n > maxReasonLen {
		return nil, ErrInvalidReason
	}

	r, err := repo.GetRequest(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if terr := repo.TransitionStatus(ctx, tx, id, domain.StatusPending, domain.StatusRejected, map[string]any{
			"rejection_reason": reason,
		}); terr != nil {
			return terr
		}
		_, derr := repo.CreateDecision(ctx, tx, id, domain.ActionReject, reason)
		return derr
	})
	if err != nil {
		return nil, mapTransitionErr(err)
	}
	requestsDecided.WithLabelValues(domain.ActionReject).Inc()

	r.Status = domain.StatusRejected
	r.RejectionReason = reason

	if s.Notifier != nil {
		if nerr := s.Notifier.SendRejection(context.WithoutCancel(ctx), r.Phone, reason); nerr != nil {
			notificationsSent.WithLabelValues("failure").Inc()
			log.Warn().Err(nerr).Str("request_id", r.ID).Msg("rejection notification failed")
		} else {
			notificationsSent.WithLabelValues("success").Inc()
		}
	}
	return r, nil
}

// afterApprove runs the best-effort side effects of an approval: render the
// invoice, attach its public location, and notify the submitter. Each step
// fails independently without affecting the committed approval.
func (s *DecisionService) afterApprove(ctx context.Context, r *domain.InsuranceRequest) {
	if s.Renderer != nil {
		path, err := s.Renderer.Render(r, r.InvoiceNo, r.Premium)
		if err != nil {
			invoicesRendered.WithLabelValues("failure").Inc()
			log.Warn().Err(err).Str("request_id", r.ID).Str("invoice_no", r.InvoiceNo).Msg("invoice render failed")
		} else {
			invoicesRendered.WithLabelValues("success").Inc()
			pdfURL := s.PublicBaseURL + "/invoices/" + invoice.FileName(r.InvoiceNo)
			if aerr := repo.AttachInvoicePDF(ctx, s.DB, r.ID, pdfURL); aerr != nil {
				log.Warn().Err(aerr).Str("request_id", r.ID).Str("path", path).Msg("invoice pdf attach failed")
			} else {
				r.InvoicePDF = pdfURL
			}
		}
	}

	if s.Notifier != nil {
		if nerr := s.Notifier.SendApproval(ctx, r.Phone, r.InvoiceNo, r.Premium, r.PaymentLink); nerr != nil {
			notificationsSent.WithLabelValues("failure").Inc()
			log.Warn().Err(nerr).Str("request_id", r.ID).Msg("approval notification failed")
		} else {
			notificationsSent.WithLabelValues("success").Inc()
		}
	}
}

// finalPremium applies the reuse-first policy: a stored non-zero provisional
// premium is kept (re-clamped), otherwise the premium is recomputed from the
// stored quantity and rate.
func (s *DecisionService) finalPremium(r *domain.InsuranceRequest) decimal.Decimal {
	if r.Premium.Sign() > 0 {
		return premium.Clamp(r.Premium)
	}
	return premium.Compute(r.Quantity, r.Rate)
}

// mapTransitionErr converts repo-level transition failures into the
// service-level sentinels handlers branch on.
func mapTransitionErr(err error) error {
	switch {
	case errors.Is(err, repo.ErrStaleStatus):
		return ErrAlreadyDecided
	case errors.Is(err, repo.ErrNotFound):
		return ErrRequestNotFound
	default:
		return err
	}
}
