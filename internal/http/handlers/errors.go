// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package). These codes give the
// webhook source and the admin console a stable, machine-readable taxonomy
// that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless noted.
//   - Generic codes (bad_request, not_found, conflict) mirror common HTTP
//     status semantics to aid interoperability.
//   - Domain-specific codes are reserved for business errors that status
//     alone cannot convey: duplicate_request for a second submission from
//     the same phone, already_decided for a decision on a terminal request.
//   - All error responses include both an HTTP status and one of these codes.

package handlers

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeConflict    = "conflict"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"

	// Domain-specific:
	ErrCodeDuplicateRequest = "duplicate_request"
	ErrCodeAlreadyDecided   = "already_decided"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)
