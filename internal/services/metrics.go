// Package services – domain metrics.
//
// Prometheus counters for the request lifecycle and its best-effort side
// effects. Side-effect failures never reach the API client, so these
// counters (with the warn logs) are the observable record of them.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	requestsSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "insurance_requests_submitted_total",
		Help: "Requests persisted in PENDING_VERIFICATION.",
	})

	requestsDecided = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "insurance_requests_decided_total",
		Help: "Admin decisions committed, by action.",
	}, []string{"action"})

	invoicesRendered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invoices_rendered_total",
		Help: "Invoice render attempts after approval, by outcome.",
	}, []string{"outcome"})

	notificationsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Outbound WhatsApp sends, by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(requestsSubmitted, requestsDecided, invoicesRendered, notificationsSent)
}
