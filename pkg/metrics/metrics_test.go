package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/x", 200, time.Millisecond)
		m.ObserveDBQuery("exec", nil, time.Millisecond)
		m.SetDBConnections(1, 1, 0)
		m.AddSlotsGenerated(3)
		m.IncCalendarFallback("demo")
		m.IncBookingCompleted()
		m.IncBookingRejected("expired")
		m.IncSideEffectFailure("email")
		m.IncReceiptProcessed("matched")
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := New("portal-booking")

	m.IncBookingCompleted()
	m.IncBookingCompleted()
	m.IncBookingRejected("used")
	m.AddSlotsGenerated(12)
	m.ObserveDBQuery("query", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCompleted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingRejections.WithLabelValues("used")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.slotsGenerated))
}

func TestMetrics_HandlerExposesRegistry(t *testing.T) {
	m := New("portal-booking")
	m.IncCalendarFallback("demo")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `availability_calendar_fallbacks_total{reason="demo",service="portal-booking"} 1`)
}
