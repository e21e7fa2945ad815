// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kids_center_bookings_created_total",
		Help: "Total number of bookings persisted",
	})

	storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kids_center_store_errors_total",
		Help: "Booking store failures by operation",
	}, []string{"op"}) // op=insert|list

	eventPublishes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kids_center_booking_events_total",
		Help: "booking.created publish attempts by outcome",
	}, []string{"outcome"}) // outcome=success|failure

	// HTTPRequestDuration is observed by the Echo metrics middleware.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kids_center_http_request_duration_seconds",
		Help:    "HTTP request latencies in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

// IncBookingsCreated counts a successful insert.
func IncBookingsCreated() { bookingsCreated.Inc() }

// IncStoreError counts a failed store operation.
func IncStoreError(op string) { storeErrors.WithLabelValues(op).Inc() }

// RecordEventPublish counts a booking event publish attempt.
func RecordEventPublish(err error) {
	if err != nil {
		eventPublishes.WithLabelValues("failure").Inc()
		return
	}
	eventPublishes.WithLabelValues("success").Inc()
}
