// Package notify delivers outbound WhatsApp text messages to submitters
// through an HTTP gateway. Delivery is best effort: the caller logs failures
// and never lets them fail the admin operation that triggered the send.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/NikhilOR/mandiplus-bot-backend/internal/config"
)

// ErrDisabled is returned when no gateway URL is configured. Callers treat it
// like any other delivery failure (logged, non-fatal).
var ErrDisabled = errors.New("notify: gateway not configured")

// sendMessageRequest is the gateway's wire format.
type sendMessageRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// WhatsAppNotifier sends templated texts via a WhatsApp HTTP gateway.
type WhatsAppNotifier struct {
	cfg    config.NotifyConfig
	client *resty.Client
	en     *message.Printer
}

// NewWhatsAppNotifier builds a notifier bound to the gateway settings. The
// HTTP client carries the configured per-send timeout.
func NewWhatsAppNotifier(cfg config.NotifyConfig) *WhatsAppNotifier {
	c := resty.New().SetTimeout(cfg.Timeout)
	if cfg.Token != "" {
		c.SetAuthToken(cfg.Token)
	}
	return &WhatsAppNotifier{
		cfg:    cfg,
		client: c,
		en:     message.NewPrinter(language.English),
	}
}

// SendApproval texts the submitter that their request was approved, including
// the invoice number, the formatted premium, and the payment link.
func (n *WhatsAppNotifier) SendApproval(ctx context.Context, phone, invoiceNo string, prem decimal.Decimal, paymentLink string) error {
	p, _ := prem.Float64()
	msg := n.en.Sprintf(
		"Your transit insurance request is approved.\nInvoice: %s\nPremium: Rs %.2f\nPay here: %s",
		invoiceNo, p, paymentLink,
	)
	return n.send(ctx, phone, msg)
}

// SendRejection texts the submitter that their request was rejected, with the
// admin's reason.
func (n *WhatsAppNotifier) SendRejection(ctx context.Context, phone, reason string) error {
	msg := fmt.Sprintf(
		"Your transit insurance request was rejected.\nReason: %s\nYou can submit a fresh request anytime.",
		reason,
	)
	return n.send(ctx, phone, msg)
}

func (n *WhatsAppNotifier) send(ctx context.Context, phone, msg string) error {
	if n.cfg.URL == "" {
		return ErrDisabled
	}
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(sendMessageRequest{Phone: phone, Message: msg}).
		Post(n.cfg.URL)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("notify: gateway status %d", resp.StatusCode())
	}
	return nil
}
