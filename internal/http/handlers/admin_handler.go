// Admin HTTP handlers.
//
// This file exposes the admin-console REST endpoints:
//   - GET  /admin/pending             (verification queue, newest first)
//   - GET  /admin/requests            (filtered, paginated listing)
//   - POST /admin/approve/{id}        (approve with optional note)
//   - POST /admin/reject/{id}         (reject with required reason)
//
// A decision attempt on a request already in a terminal state returns a
// conflict envelope rather than mutating anything.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/domain"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/services"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/utils"
)

//
// DTOs
//

// ApproveRequest is the optional JSON payload for an approval.
type ApproveRequest struct {
	// Note optionally records why the admin approved.
	Note string `json:"note,omitempty" example:"documents verified on call"`
}

// RejectRequest is the JSON payload for a rejection.
type RejectRequest struct {
	// Reason is shown to the submitter; 10 to 500 characters.
	Reason string `json:"reason" example:"vehicle number does not match the uploaded permit"`
}

// Page carries offset pagination metadata for list responses.
type Page struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// ListRequestsResponse wraps a page of requests and pagination information.
type ListRequestsResponse struct {
	Requests []domain.InsuranceRequest `json:"requests"`
	Page     Page                      `json:"page"`
}

// PendingResponse wraps the verification queue.
type PendingResponse struct {
	Requests []domain.InsuranceRequest `json:"requests"`
	Count    int                       `json:"count"`
}

//
// Helpers
//

// clampPage parses and bounds the limit and offset query params to sane
// defaults and limits.
func clampPage(c *gin.Context) (limit, offset int) {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)
	limit = utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset = utils.AtoiDefault(c.Query("offset"), 0)
	if offset < 0 {
		offset = 0
	}
	return
}

// decisionError maps decision failures onto the error envelope. A decision on
// a terminal request is a conflict; an unknown id is a 404.
func (h *Handlers) decisionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlreadyDecided):
		fail(c, http.StatusConflict, ErrCodeAlreadyDecided, "request already in a terminal state", "")
	case errors.Is(err, services.ErrRequestNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "request not found", "")
	case errors.Is(err, services.ErrInvalidReason):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), "")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error", h.detail(err))
	}
}

//
// Handlers
//

// ListPending godoc
// @ID          listPendingRequests
// @Summary     List the verification queue
// @Description Returns every request awaiting verification, newest submission first.
// @Tags        Admin
// @Produce     json
//
// @Success     200  {object}  handlers.PendingResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/pending [get]
func (h *Handlers) ListPending(c *gin.Context) {
	items, err := h.reqSvc.ListPending(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error", h.detail(err))
		return
	}
	if items == nil {
		items = []domain.InsuranceRequest{}
	}
	ok(c, http.StatusOK, PendingResponse{Requests: items, Count: len(items)})
}

// ListRequests godoc
// @ID          listRequests
// @Summary     List requests (filtered, paginated)
// @Description Returns a page of requests optionally filtered by lifecycle status, with the matching total.
// @Tags        Admin
// @Produce     json
//
// @Param       status  query  string  false  "Filter by status"  Enums(PENDING_VERIFICATION, APPROVED, REJECTED)
// @Param       limit   query  int     false  "Items per page"    minimum(1) maximum(100) default(20)
// @Param       offset  query  int     false  "Items to skip"     minimum(0) default(0)
//
// @Success     200  {object}  handlers.ListRequestsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Unknown status filter"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/requests [get]
func (h *Handlers) ListRequests(c *gin.Context) {
	limit, offset := clampPage(c)
	items, total, err := h.reqSvc.ListByStatus(c.Request.Context(), c.Query("status"), offset, limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidStatus) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error(), "")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error", h.detail(err))
		return
	}
	if items == nil {
		items = []domain.InsuranceRequest{}
	}
	ok(c, http.StatusOK, ListRequestsResponse{
		Requests: items,
		Page:     Page{Limit: limit, Offset: offset, Total: total},
	})
}

// Approve godoc
// @ID          approveRequest
// @Summary     Approve a pending request
// @Description Finalizes the premium, assigns an invoice number and payment link, and moves the request to APPROVED. Invoice rendering and submitter notification run best-effort after the commit.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                   true   "Request ID (UUID)"  format(uuid)
// @Param       body  body  handlers.ApproveRequest  false  "Optional admin note"
//
// @Success     200  {object}  domain.InsuranceRequest
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown request"
// @Failure     409  {object}  handlers.ErrorResponse  "Request already decided"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/approve/{id} [post]
func (h *Handlers) Approve(c *gin.Context) {
	// The note body is optional; an absent or empty body is fine.
	var req ApproveRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", h.detail(err))
			return
		}
	}

	r, err := h.decSvc.Approve(c.Request.Context(), c.Param("id"), req.Note)
	if err != nil {
		h.decisionError(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}

// Reject godoc
// @ID          rejectRequest
// @Summary     Reject a pending request
// @Description Moves the request to REJECTED with the given reason and notifies the submitter best-effort.
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                  true  "Request ID (UUID)"  format(uuid)
// @Param       body  body  handlers.RejectRequest  true  "Rejection reason (10-500 chars)"
//
// @Success     200  {object}  domain.InsuranceRequest
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or out-of-bounds reason"
// @Failure     404  {object}  handlers.ErrorResponse  "Unknown request"
// @Failure     409  {object}  handlers.ErrorResponse  "Request already decided"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /admin/reject/{id} [post]
func (h *Handlers) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body", h.detail(err))
		return
	}

	r, err := h.decSvc.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		h.decisionError(c, err)
		return
	}
	ok(c, http.StatusOK, r)
}
