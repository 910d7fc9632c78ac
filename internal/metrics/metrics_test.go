package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordReservation(t *testing.T) {
	ReservationsTotal.Reset()

	RecordReservation("confirmed")
	RecordReservation("confirmed")
	RecordReservation("capacity_exceeded")
	RecordReservation("no_subscription")

	assert.Equal(t, float64(2), testutil.ToFloat64(ReservationsTotal.WithLabelValues("confirmed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(ReservationsTotal.WithLabelValues("capacity_exceeded")))
	assert.Equal(t, float64(1), testutil.ToFloat64(ReservationsTotal.WithLabelValues("no_subscription")))
	assert.Equal(t, float64(0), testutil.ToFloat64(ReservationsTotal.WithLabelValues("duplicate")))
}

func TestRecordPayment(t *testing.T) {
	PaymentsTotal.Reset()
	PaymentAmountCents.Reset()

	RecordPayment("webpay", 2450000)
	RecordPayment("webpay", 2450000)
	RecordPayment("cash", 1000)

	assert.Equal(t, float64(2), testutil.ToFloat64(PaymentsTotal.WithLabelValues("webpay")))
	assert.Equal(t, float64(4900000), testutil.ToFloat64(PaymentAmountCents.WithLabelValues("webpay")))
	assert.Equal(t, float64(1000), testutil.ToFloat64(PaymentAmountCents.WithLabelValues("cash")))
}

func TestRecordReconcileRun(t *testing.T) {
	before := testutil.ToFloat64(SubscriptionsExpiredTotal)

	RecordReconcileRun(3)
	RecordReconcileRun(0)

	assert.Equal(t, before+3, testutil.ToFloat64(SubscriptionsExpiredTotal))
}

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/sessions/3/reserve", "201", 0.12)
	RecordHTTPRequest("POST", "/sessions/3/reserve", "409", 0.05)

	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/sessions/3/reserve", "201")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/sessions/3/reserve", "409")))
}
