package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observers(t *testing.T) {
	m := NewWithRegistry("parking", prometheus.NewRegistry())

	m.ObserveHTTPRequest("GET", "/api/v1/bookings", 200, 10*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/bookings", 200, 20*time.Millisecond)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/bookings", "200")))

	m.ObserveDBQuery("select", time.Millisecond, nil)
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("insert")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DBQueryErrors.WithLabelValues("select")))

	m.ObserveBookingOperation("add", "conflict")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingOperations.WithLabelValues("add", "conflict")))

	m.SetEmptySpacesToday(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.EmptySpacesToday))

	m.SetPoolStats(5, 2, 3)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DBInUse))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
		m.ObserveDBQuery("select", time.Second, nil)
		m.ObserveBookingOperation("add", "ok")
		m.SetEmptySpacesToday(1)
		m.SetPoolStats(1, 1, 1)
	})
}
