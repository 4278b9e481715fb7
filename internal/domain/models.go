// Package domain defines the persistence models for insurance requests and
// admin decisions. These types are mapped with GORM and form the core data
// layer of the MandiPlus backend.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request lifecycle states. Status only ever moves forward:
// PENDING_VERIFICATION is the single initial state, APPROVED and REJECTED are
// terminal. Terminal rows are never mutated again except to attach the
// rendered invoice PDF location after approval.
const (
	StatusPending  = "PENDING_VERIFICATION"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Payment states for the placeholder payment link issued at approval.
const (
	PaymentPending = "PENDING"
)

// Decision actions recorded in the audit trail.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// InsuranceRequest is the central entity: one transit-insurance submission
// per farmer phone number.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Phone: digits-only normalized submitter phone; unique across all rows,
//     so at most one active request exists per submitter.
//   - SubmittedAt: when the webhook reported the submission (not row creation).
//   - FarmerName / ItemName / Origin / Destination / VehicleNo: descriptive
//     cargo, party, and vehicle fields; all optional free text.
//   - Quantity: positive unit count of the insured produce.
//   - Rate: per-unit rate in rupees; absent rates are stored as zero.
//   - Consent: must be true at creation; falsy consent blocks persistence.
//   - Status: lifecycle state, see constants above.
//   - Premium: 0.2% of quantity x rate, clamped to the decimal(10,2) ceiling.
//   - InvoiceNo: unique token assigned at approval; also the PDF storage key.
//   - PaymentLink / PaymentStatus: placeholder payment reference, set on
//     approval with PaymentStatus PENDING.
//   - RejectionReason: set only when rejected.
//   - InvoicePDF: public URL of the rendered invoice, attached post-approval.
type InsuranceRequest struct {
	ID          string          `json:"id"           gorm:"type:char(36);primaryKey"`
	Phone       string          `json:"phone"        gorm:"type:varchar(20);not null;uniqueIndex:ux_requests_phone"`
	SubmittedAt time.Time       `json:"submitted_at"`
	FarmerName  string          `json:"farmer_name,omitempty"  gorm:"type:varchar(128)"`
	ItemName    string          `json:"item_name"    gorm:"type:varchar(128);not null"`
	Origin      string          `json:"origin,omitempty"       gorm:"type:varchar(128)"`
	Destination string          `json:"destination,omitempty"  gorm:"type:varchar(128)"`
	VehicleNo   string          `json:"vehicle_no,omitempty"   gorm:"type:varchar(32)"`
	Quantity    int             `json:"quantity"     gorm:"not null;check:quantity > 0"`
	Rate        decimal.Decimal `json:"rate"         gorm:"type:decimal(10,2)"`
	Consent     bool            `json:"consent"      gorm:"not null"`
	Status      string          `json:"status"       gorm:"type:varchar(32);not null;index;check:status IN ('PENDING_VERIFICATION','APPROVED','REJECTED')"`
	Premium     decimal.Decimal `json:"premium"      gorm:"type:decimal(10,2)"`

	ImageURL string `json:"image_url,omitempty" gorm:"type:varchar(512)"`

	InvoiceNo       string `json:"invoice_no,omitempty"       gorm:"type:varchar(64);uniqueIndex:ux_requests_invoice,where:invoice_no <> ''"`
	PaymentLink     string `json:"payment_link,omitempty"     gorm:"type:varchar(512)"`
	PaymentStatus   string `json:"payment_status,omitempty"   gorm:"type:varchar(16)"`
	RejectionReason string `json:"rejection_reason,omitempty" gorm:"type:varchar(512)"`
	InvoicePDF      string `json:"invoice_pdf,omitempty"      gorm:"type:varchar(512)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for InsuranceRequest.
func (InsuranceRequest) TableName() string { return "insurance_requests" }

// IsTerminal reports whether the request has reached a terminal state.
func (r *InsuranceRequest) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

// Decision is one admin action taken on a request. Rows are append-only and
// returned alongside the request as its decision history.
type Decision struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	RequestID string    `json:"request_id" gorm:"type:char(36);not null;index:idx_request_decisions"`
	Action    string    `json:"action"     gorm:"type:varchar(16);not null;check:action IN ('approve','reject')"`
	Note      string    `json:"note,omitempty" gorm:"type:varchar(512)"`
	CreatedAt time.Time `json:"created_at"`

	// Request is the decided submission. Decisions are cascade-deleted if the
	// underlying request is ever removed manually.
	Request InsuranceRequest `json:"-" gorm:"foreignKey:RequestID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Decision.
func (Decision) TableName() string { return "decisions" }
