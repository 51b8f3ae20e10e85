package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ReservationCreated(2)
		m.ReservationFailed("room_unavailable")
		m.Transition("Cancelled")
		m.AvailabilitySearch(3)
		m.ObserveRequest("/x", http.MethodGet, 200, time.Millisecond)
	})
	assert.Nil(t, m.Registry())
}

func TestCountersAndExposition(t *testing.T) {
	m := New("test")

	m.ReservationCreated(2)
	m.ReservationCreated(1)
	m.ReservationFailed("date_conflict")
	m.Transition("Completed")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.reservationsCreated))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.roomsBooked))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.reservationFailures.WithLabelValues("date_conflict")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.transitions.WithLabelValues("Completed")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_reservations_created_total 2"))
}
