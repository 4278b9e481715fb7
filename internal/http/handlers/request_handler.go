// Insurance request HTTP handlers.
//
// This file exposes the webhook-facing REST endpoints:
//   - POST /insurance/request          (submit)
//   - GET  /insurance/request/{id}     (full record + decision history)
//   - GET  /insurance/status/{phone}   (status projection)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses. The webhook source sends loosely
// typed JSON, so consent and timestamp fields accept several encodings.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/domain"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/services"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// RequestService defines the intake and read operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RequestService interface {
	// Submit validates and persists a webhook submission.
	Submit(ctx context.Context, in services.SubmitInput) (*domain.InsuranceRequest, error)
	// Get returns a request with its decision history.
	Get(ctx context.Context, id string) (*domain.InsuranceRequest, []domain.Decision, error)
	// StatusByPhone returns the request for a submitter phone.
	StatusByPhone(ctx context.Context, phone string) (*domain.InsuranceRequest, error)
	// ListPending returns all requests awaiting verification, newest first.
	ListPending(ctx context.Context) ([]domain.InsuranceRequest, error)
	// ListByStatus returns a filtered page and the matching total.
	ListByStatus(ctx context.Context, status string, offset, limit int) ([]domain.InsuranceRequest, int64, error)
}

// DecisionService defines the admin approve/reject operations.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type DecisionService interface {
	// Approve transitions a pending request to APPROVED with an optional note.
	Approve(ctx context.Context, id, note string) (*domain.InsuranceRequest, error)
	// Reject transitions a pending request to REJECTED with a required reason.
	Reject(ctx context.Context, id, reason string) (*domain.InsuranceRequest, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for submissions and admin decisions.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	reqSvc RequestService
	decSvc DecisionService

	// prod suppresses diagnostic detail in error envelopes.
	prod bool
}

// New constructs a Handlers instance bound to the given services. Set prod
// to true to suppress diagnostic detail in error responses.
func New(reqSvc RequestService, decSvc DecisionService, prod bool) *Handlers {
	return &Handlers{reqSvc: reqSvc, decSvc: decSvc, prod: prod}
}

// detail returns err.Error() for the envelope's diagnostic field, or an empty
// string in production mode.
func (h *Handlers) detail(err error) string {
	if h.prod || err == nil {
		return ""
	}
	return err.Error()
}

//
// DTOs
//

// SubmitRequest is the JSON payload accepted from the messaging webhook.
//
// The gateway forwards user-typed values with little normalization, so the
// loose fields tolerate multiple encodings: Consent accepts booleans and the
// strings true/false/yes/no/1/0; Timestamp accepts RFC3339 text or a Unix
// epoch in seconds or milliseconds; Rate accepts a JSON number or a quoted
// decimal string.
type SubmitRequest struct {
	// Phone is the submitter's number; formatting is stripped server-side.
	Phone string `json:"phone" example:"+91 98765 43210"`
	// Timestamp of the original message (RFC3339 or epoch); defaults to now.
	Timestamp any `json:"timestamp,omitempty" swaggertype:"string" example:"2025-06-01T09:30:00Z"`
	// FarmerName optionally names the consignor.
	FarmerName string `json:"farmer_name,omitempty" example:"Ravi Kumar"`
	// ItemName is the produce being insured.
	ItemName string `json:"item_name" example:"Tender Coconut"`
	// Origin mandi or pickup point.
	Origin string `json:"origin,omitempty" example:"Maddur APMC"`
	// Destination market.
	Destination string `json:"destination,omitempty" example:"Bengaluru"`
	// VehicleNo of the transporting vehicle.
	VehicleNo string `json:"vehicle_no,omitempty" example:"KA-01-AB-1234"`
	// ImageURL of the loaded-produce photo shared over WhatsApp.
	ImageURL string `json:"image_url,omitempty" example:"https://cdn.example.com/loads/abc.jpg"`
	// Quantity in units (must be >= 1).
	Quantity int `json:"quantity" example:"45"`
	// Rate per unit in rupees; optional, defaults to 0.
	Rate decimal.Decimal `json:"rate,omitempty" swaggertype:"string" example:"98.50"`
	// Consent to the insurance terms; must be truthy.
	Consent any `json:"consent" swaggertype:"boolean" example:"true"`
}

// SubmitResponse is the 201 summary returned for a stored submission.
type SubmitResponse struct {
	Success bool   `json:"success" example:"true"`
	ID      string `json:"id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Status  string `json:"status" example:"PENDING_VERIFICATION"`
	// Premium is the provisional premium in rupees.
	Premium decimal.Decimal `json:"premium" swaggertype:"string" example:"8.87"`
}

// RequestDetailResponse wraps a full request with its decision history.
type RequestDetailResponse struct {
	Request   *domain.InsuranceRequest `json:"request"`
	Decisions []domain.Decision        `json:"decisions"`
}

// StatusResponse is the submitter-facing projection of a request. It carries
// the lifecycle outcome and payment pointers but none of the audit fields.
type StatusResponse struct {
	ID              string          `json:"id"`
	Status          string          `json:"status"`
	Premium         decimal.Decimal `json:"premium" swaggertype:"string"`
	InvoiceNo       string          `json:"invoice_no,omitempty"`
	PaymentLink     string          `json:"payment_link,omitempty"`
	PaymentStatus   string          `json:"payment_status,omitempty"`
	InvoicePDF      string          `json:"invoice_pdf,omitempty"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
}

//
// Handlers
//

// SubmitRequest godoc
// @ID          submitInsuranceRequest
// @Summary     Submit an insurance request
// @Description Accepts a webhook submission, computes the provisional premium, and stores the request awaiting verification.
// @Tags        Insurance
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SubmitRequest  true  "Submission payload"
//
// @Success     201  {object}  handlers.SubmitResponse
// @Failure     400  {object}  handlers.ErrorResponse      "Validation failure or withheld consent"
// @Failure     409  {object}  handlers.DuplicateResponse  "A request already exists for this phone"
// @Failure     500  {object}  handlers.ErrorResponse      "Internal error"
// @Router      /insurance/request [post]
func (h *Handlers) SubmitRequest(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", h.detail(err))
		return
	}

	in := services.SubmitInput{
		Phone:       req.Phone,
		FarmerName:  strings.TrimSpace(req.FarmerName),
		ItemName:    strings.TrimSpace(req.ItemName),
		Origin:      strings.TrimSpace(req.Origin),
		Destination: strings.TrimSpace(req.Destination),
		VehicleNo:   strings.TrimSpace(req.VehicleNo),
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Quantity:    req.Quantity,
		Rate:        req.Rate,
		Consent:     utils.Truthy(req.Consent),
	}
	if req.Timestamp != nil {
		ts, okTS := utils.ParseTimestamp(req.Timestamp)
		if !okTS {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "timestamp must be RFC3339 or a Unix epoch", "")
			return
		}
		in.SubmittedAt = ts.UTC()
	}

	r, err := h.reqSvc.Submit(c.Request.Context(), in)
	if err != nil {
		h.submitError(c, err)
		return
	}
	ok(c, http.StatusCreated, SubmitResponse{
		Success: true,
		ID:      r.ID,
		Status:  r.Status,
		Premium: r.Premium,
	})
}

// submitError maps intake failures onto the error envelope. Validation
// sentinels become 400s; a duplicate phone becomes a 409 that carries the
// stored request's identity and state.
func (h *Handlers) submitError(c *gin.Context, err error) {
	var dup *services.DuplicateRequestError
	switch {
	case errors.As(err, &dup):
		c.AbortWithStatusJSON(http.StatusConflict, DuplicateResponse{
			ErrorResponse: ErrorResponse{
				Success:   false,
				RequestID: c.Writer.Header().Get("X-Request-ID"),
				Code:      ErrCodeDuplicateRequest,
				Message:   "a request already exists for this phone",
			},
			ExistingID:     dup.ID,
			ExistingStatus: dup.Status,
		})
	case errors.Is(err, services.ErrConsentRequired),
		errors.Is(err, services.ErrInvalidPhone),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidItem):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), "")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error", h.detail(err))
	}
}

// GetRequest godoc
// @ID          getInsuranceRequest
// @Summary     Get a request with its decision history
// @Description Returns the full stored request plus every recorded admin decision.
// @Tags        Insurance
// @Produce     json
//
// @Param       id  path  string  true  "Request ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.RequestDetailResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown request"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /insurance/request/{id} [get]
func (h *Handlers) GetRequest(c *gin.Context) {
	r, decisions, err := h.reqSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found", "")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error", h.detail(err))
		return
	}
	if decisions == nil {
		decisions = []domain.Decision{}
	}
	ok(c, http.StatusOK, RequestDetailResponse{Request: r, Decisions: decisions})
}

// GetStatus godoc
// @ID          getInsuranceStatus
// @Summary     Check submission status by phone
// @Description Returns the status projection for the request stored under a submitter phone. Formatting in the phone is ignored.
// @Tags        Insurance
// @Produce     json
//
// @Param       phone  path  string  true  "Submitter phone"  example(919876543210)
//
// @Success     200  {object}  handlers.StatusResponse
// @Failure     404  {object}  handlers.ErrorResponse  "No request for this phone"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /insurance/status/{phone} [get]
func (h *Handlers) GetStatus(c *gin.Context) {
	r, err := h.reqSvc.StatusByPhone(c.Request.Context(), c.Param("phone"))
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no request found for this phone", "")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error", h.detail(err))
		return
	}
	ok(c, http.StatusOK, StatusResponse{
		ID:              r.ID,
		Status:          r.Status,
		Premium:         r.Premium,
		InvoiceNo:       r.InvoiceNo,
		PaymentLink:     r.PaymentLink,
		PaymentStatus:   r.PaymentStatus,
		InvoicePDF:      r.InvoicePDF,
		RejectionReason: r.RejectionReason,
	})
}
