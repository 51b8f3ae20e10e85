// Package metrics exposes Prometheus collectors for the reservation engine and
// the HTTP layer. A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	reservationsCreated  prometheus.Counter
	roomsBooked          prometheus.Counter
	reservationFailures  *prometheus.CounterVec
	transitions          *prometheus.CounterVec
	availabilitySearches prometheus.Counter
	availableRooms       prometheus.Histogram

	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = "hotel"
	}
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Reservations committed.",
		}),
		roomsBooked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_booked_total",
			Help:      "Rooms attached to committed reservations.",
		}),
		reservationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_failures_total",
			Help:      "Reservation attempts that were rejected or rolled back.",
		}, []string{"reason"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_transitions_total",
			Help:      "Lifecycle transitions applied to reservations.",
		}, []string{"status"}),
		availabilitySearches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_searches_total",
			Help:      "Availability queries served.",
		}),
		availableRooms: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "availability_rooms_found",
			Help:      "Rooms returned per availability query.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests processed.",
		}, []string{"route", "method", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	m.registry.MustRegister(
		m.reservationsCreated,
		m.roomsBooked,
		m.reservationFailures,
		m.transitions,
		m.availabilitySearches,
		m.availableRooms,
		m.requests,
		m.durations,
	)
	return m
}

func (m *Metrics) ReservationCreated(rooms int) {
	if m == nil {
		return
	}
	m.reservationsCreated.Inc()
	m.roomsBooked.Add(float64(rooms))
}

func (m *Metrics) ReservationFailed(reason string) {
	if m == nil {
		return
	}
	m.reservationFailures.WithLabelValues(reason).Inc()
}

func (m *Metrics) Transition(status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(status).Inc()
}

func (m *Metrics) AvailabilitySearch(found int) {
	if m == nil {
		return
	}
	m.availabilitySearches.Inc()
	m.availableRooms.Observe(float64(found))
}

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.durations.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
