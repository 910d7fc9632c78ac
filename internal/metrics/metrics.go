package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymlite_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymlite_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymlite_reservations_total",
			Help: "Reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	ReservationCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymlite_reservation_cancellations_total",
			Help: "Total number of reservation cancellations",
		},
	)

	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymlite_payments_total",
			Help: "Recorded payments by method",
		},
		[]string{"method"},
	)

	PaymentAmountCents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymlite_payment_amount_cents_total",
			Help: "Recorded payment volume in cents by method",
		},
		[]string{"method"},
	)

	ReconcileRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymlite_subscription_reconcile_runs_total",
			Help: "Total number of subscription reconcile runs",
		},
	)

	SubscriptionsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymlite_subscriptions_expired_total",
			Help: "Subscriptions flipped to expired by reconcile",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymlite_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymlite_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservation(outcome string) {
	ReservationsTotal.WithLabelValues(outcome).Inc()
}

func RecordReservationCancellation() {
	ReservationCancellationsTotal.Inc()
}

func RecordPayment(method string, amountCents int64) {
	PaymentsTotal.WithLabelValues(method).Inc()
	PaymentAmountCents.WithLabelValues(method).Add(float64(amountCents))
}

func RecordReconcileRun(expired int64) {
	ReconcileRunsTotal.Inc()
	SubscriptionsExpiredTotal.Add(float64(expired))
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
