// Package services defines the business logic for insurance-request intake
// and admin decisions. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer; the
// handler layer translates them into HTTP statuses and envelope codes.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrConsentRequired is returned when a submission arrives without an
	// affirmative consent value. Nothing is persisted in that case.
	ErrConsentRequired = errors.New("consent is required")

	// ErrInvalidPhone is returned when the submitter identifier contains no
	// digits after normalization.
	ErrInvalidPhone = errors.New("phone number is required")

	// ErrInvalidQuantity is returned when quantity is missing or not positive.
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// ErrInvalidItem is returned when the item name is empty.
	ErrInvalidItem = errors.New("item name is required")

	// ErrRequestNotFound indicates that the referenced request does not exist.
	ErrRequestNotFound = errors.New("request not found")

	// ErrAlreadyDecided is returned when an approve or reject call finds the
	// request in a terminal state. The stored decision is never overwritten.
	ErrAlreadyDecided = errors.New("request already in terminal state")

	// ErrInvalidReason is returned when a rejection reason is missing or
	// outside the 10-500 character bounds. Checked before any store access.
	ErrInvalidReason = errors.New("rejection reason must be 10-500 characters")

	// ErrInvalidStatus is returned for listing filters naming an unknown state.
	ErrInvalidStatus = errors.New("unknown status filter")
)

// DuplicateRequestError reports that the submitter already has a request on
// file. It carries the existing record's identity so the webhook caller can
// tell the submitter where their request stands instead of creating a second
// row.
type DuplicateRequestError struct {
	ID     string
	Status string
}

func (e *DuplicateRequestError) Error() string {
	return fmt.Sprintf("request already exists (id=%s, status=%s)", e.ID, e.Status)
}
