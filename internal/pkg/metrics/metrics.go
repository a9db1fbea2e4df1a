// Package metrics holds the Prometheus collectors for the outreach pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EmailsSent counts delivery attempts by provider and outcome (sent, failed).
	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_emails_total",
			Help: "Outreach delivery attempts by provider and status",
		},
		[]string{"provider", "status"},
	)

	// SendDuration observes provider call latency in seconds.
	SendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outreach_send_duration_seconds",
			Help:    "Transactional email provider call latency",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
		},
		[]string{"provider"},
	)

	// QuotaRejections counts sends refused because the daily quota was spent.
	QuotaRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outreach_quota_rejections_total",
			Help: "Sends refused by the daily quota gate",
		},
	)

	// ContactsImported counts import outcomes per record (imported, skipped, error).
	ContactsImported = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_contacts_import_total",
			Help: "Contact import records by outcome",
		},
		[]string{"outcome"},
	)

	// BatchQueued counts contacts returned as queued by batch sends.
	BatchQueued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "outreach_batch_queued_total",
			Help: "Contacts deferred by batch sends because of the quota clamp",
		},
	)
)

// RecordSend records one provider call.
func RecordSend(provider string, success bool, duration time.Duration) {
	status := "sent"
	if !success {
		status = "failed"
	}
	EmailsSent.WithLabelValues(provider, status).Inc()
	SendDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordImport adds the per-outcome counts of one import run.
func RecordImport(imported, skipped, errors int) {
	ContactsImported.WithLabelValues("imported").Add(float64(imported))
	ContactsImported.WithLabelValues("skipped").Add(float64(skipped))
	ContactsImported.WithLabelValues("error").Add(float64(errors))
}

// Handler exposes the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
