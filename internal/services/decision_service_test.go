package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/domain"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/invoice"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/premium"
	"github.com/NikhilOR/mandiplus-bot-backend/internal/repo"
)

// fakeRenderer records calls and can be told to fail.
type fakeRenderer struct {
	calls int
	fail  bool
	last  string
}

func (f *fakeRenderer) Render(_ *domain.InsuranceRequest, invoiceNo string, _ decimal.Decimal) (string, error) {
	f.calls++
	f.last = invoiceNo
	if f.fail {
		return "", errors.New("pdf boom")
	}
	return "/tmp/" + invoiceNo + ".pdf", nil
}

// fakeNotifier records calls and can be told to fail.
type fakeNotifier struct {
	approvals  int
	rejections int
	fail       bool
	lastReason string
}

func (f *fakeNotifier) SendApproval(_ context.Context, _, _ string, _ decimal.Decimal, _ string) error {
	f.approvals++
	if f.fail {
		return errors.New("gateway down")
	}
	return nil
}

func (f *fakeNotifier) SendRejection(_ context.Context, _, reason string) error {
	f.rejections++
	f.lastReason = reason
	if f.fail {
		return errors.New("gateway down")
	}
	return nil
}

func newDecisionService(t *testing.T, db *gorm.DB) (*DecisionService, *fakeRenderer, *fakeNotifier) {
	t.Helper()
	gen, err := invoice.NewNumberGenerator(1)
	if err != nil {
		t.Fatalf("number generator: %v", err)
	}
	r := &fakeRenderer{}
	n := &fakeNotifier{}
	return &DecisionService{
		DB:            db,
		Invoices:      gen,
		Renderer:      r,
		Notifier:      n,
		PublicBaseURL: "http://localhost:8080",
	}, r, n
}

func submitPending(t *testing.T, db *gorm.DB) *domain.InsuranceRequest {
	t.Helper()
	r, err := (&RequestService{DB: db}).Submit(context.Background(), validSubmit())
	if err != nil {
		t.Fatalf("seed submit: %v", err)
	}
	return r
}

func TestApprove_HappyPath(t *testing.T) {
	db := newServiceDB(t)
	svc, rend, notif := newDecisionService(t, db)
	pending := submitPending(t, db)

	got, err := svc.Approve(context.Background(), pending.ID, "verified on call")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if got.Status != domain.StatusApproved {
		t.Fatalf("status = %s", got.Status)
	}
	if !strings.HasPrefix(got.InvoiceNo, "INV-") {
		t.Fatalf("invoice number = %q", got.InvoiceNo)
	}
	if got.PaymentStatus != domain.PaymentPending {
		t.Fatalf("payment status = %q", got.PaymentStatus)
	}
	if !strings.Contains(got.PaymentLink, "/pay/"+got.InvoiceNo) {
		t.Fatalf("payment link = %q", got.PaymentLink)
	}
	if !got.Premium.Equal(dec("8.87")) {
		t.Fatalf("finalized premium = %s", got.Premium)
	}

	// Side effects ran.
	if rend.calls != 1 || rend.last != got.InvoiceNo {
		t.Fatalf("renderer calls=%d last=%q", rend.calls, rend.last)
	}
	if notif.approvals != 1 {
		t.Fatalf("notifier approvals = %d", notif.approvals)
	}

	// Committed to the store, PDF URL attached, decision logged.
	stored, err := repo.GetRequest(context.Background(), db, pending.ID)
	if err != nil {
		t.Fatalf("GetRequest: %v", err)
	}
	if stored.Status != domain.StatusApproved || stored.InvoiceNo != got.InvoiceNo {
		t.Fatalf("store not updated: %+v", stored)
	}
	if !strings.HasSuffix(stored.InvoicePDF, invoice.FileName(got.InvoiceNo)) {
		t.Fatalf("invoice pdf not attached: %q", stored.InvoicePDF)
	}
	decisions, _ := repo.ListDecisions(context.Background(), db, pending.ID)
	if len(decisions) != 1 || decisions[0].Action != domain.ActionApprove {
		t.Fatalf("decision history: %+v", decisions)
	}
}

func TestApprove_SideEffectFailuresAreNonFatal(t *testing.T) {
	db := newServiceDB(t)
	svc, rend, notif := newDecisionService(t, db)
	rend.fail = true
	notif.fail = true
	pending := submitPending(t, db)

	got, err := svc.Approve(context.Background(), pending.ID, "")
	if err != nil {
		t.Fatalf("Approve must not fail on side effects: %v", err)
	}
	if got.Status != domain.StatusApproved {
		t.Fatalf("status = %s", got.Status)
	}

	// The approval stays committed even though both side effects failed.
	stored, _ := repo.GetRequest(context.Background(), db, pending.ID)
	if stored.Status != domain.StatusApproved {
		t.Fatalf("approval rolled back: %s", stored.Status)
	}
	if stored.InvoicePDF != "" {
		t.Fatalf("pdf attached despite render failure: %q", stored.InvoicePDF)
	}
}

func TestApprove_TerminalStateConflicts(t *testing.T) {
	db := newServiceDB(t)
	svc, _, _ := newDecisionService(t, db)
	pending := submitPending(t, db)

	if _, err := svc.Approve(context.Background(), pending.ID, ""); err != nil {
		t.Fatalf("first Approve: %v", err)
	}

	if _, err := svc.Approve(context.Background(), pending.ID, ""); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("second approve: expected ErrAlreadyDecided, got %v", err)
	}
	if _, err := svc.Reject(context.Background(), pending.ID, "reason long enough here"); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("reject after approve: expected ErrAlreadyDecided, got %v", err)
	}
}

func TestApprove_NotFound(t *testing.T) {
	db := newServiceDB(t)
	svc, _, _ := newDecisionService(t, db)
	if _, err := svc.Approve(context.Background(), "missing", ""); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestApprove_ReusesStoredPremiumAndReclamps(t *testing.T) {
	db := newServiceDB(t)
	svc, _, _ := newDecisionService(t, db)
	pending := submitPending(t, db)

	// Simulate a stored provisional premium above the column ceiling.
	if err := db.Model(&domain.InsuranceRequest{}).
		Where("id = ?", pending.ID).
		Update("premium", "199999999.99").Error; err != nil {
		t.Fatalf("seed oversized premium: %v", err)
	}

	got, err := svc.Approve(context.Background(), pending.ID, "")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if !got.Premium.Equal(premium.MaxPremium) {
		t.Fatalf("premium not re-clamped: %s", got.Premium)
	}
}

func TestApprove_RecomputesWhenNoStoredPremium(t *testing.T) {
	db := newServiceDB(t)
	svc, _, _ := newDecisionService(t, db)
	pending := submitPending(t, db)

	if err := db.Model(&domain.InsuranceRequest{}).
		Where("id = ?", pending.ID).
		Update("premium", "0").Error; err != nil {
		t.Fatalf("zero premium: %v", err)
	}

	got, err := svc.Approve(context.Background(), pending.ID, "")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	// 45 x 98.50 x 0.002 = 8.87
	if !got.Premium.Equal(dec("8.87")) {
		t.Fatalf("recomputed premium = %s", got.Premium)
	}
}

func TestReject_HappyPath(t *testing.T) {
	db := newServiceDB(t)
	svc, _, notif := newDecisionService(t, db)
	pending := submitPending(t, db)

	reason := "vehicle number does not match the uploaded permit"
	got, err := svc.Reject(context.Background(), pending.ID, reason)
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if got.Status != domain.StatusRejected || got.RejectionReason != reason {
		t.Fatalf("unexpected result: %+v", got)
	}
	if notif.rejections != 1 || notif.lastReason != reason {
		t.Fatalf("notifier: %d calls, reason %q", notif.rejections, notif.lastReason)
	}

	stored, _ := repo.GetRequest(context.Background(), db, pending.ID)
	if stored.Status != domain.StatusRejected || stored.RejectionReason != reason {
		t.Fatalf("store not updated: %+v", stored)
	}
	decisions, _ := repo.ListDecisions(context.Background(), db, pending.ID)
	if len(decisions) != 1 || decisions[0].Action != domain.ActionReject {
		t.Fatalf("decision history: %+v", decisions)
	}
}

func TestReject_ReasonBoundsCheckedBeforeStore(t *testing.T) {
	db := newServiceDB(t)
	svc, _, notif := newDecisionService(t, db)
	pending := submitPending(t, db)

	for _, reason := range []string{"", "too short", strings.Repeat("x", 501)} {
		if _, err := svc.Reject(context.Background(), pending.ID, reason); !errors.Is(err, ErrInvalidReason) {
			t.Fatalf("reason %q: expected ErrInvalidReason, got %v", reason, err)
		}
	}
	// No mutation, no notification.
	stored, _ := repo.GetRequest(context.Background(), db, pending.ID)
	if stored.Status != domain.StatusPending {
		t.Fatalf("status mutated by invalid reject: %s", stored.Status)
	}
	if notif.rejections != 0 {
		t.Fatalf("notifier called for invalid reject")
	}
}

func TestReject_NotificationFailureStillCommits(t *testing.T) {
	db := newServiceDB(t)
	svc, _, notif := newDecisionService(t, db)
	notif.fail = true
	pending := submitPending(t, db)

	if _, err := svc.Reject(context.Background(), pending.ID, "produce already delivered yesterday"); err != nil {
		t.Fatalf("Reject must commit despite notify failure: %v", err)
	}
	stored, _ := repo.GetRequest(context.Background(), db, pending.ID)
	if stored.Status != domain.StatusRejected {
		t.Fatalf("rejection rolled back: %s", stored.Status)
	}
}
