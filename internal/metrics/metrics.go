package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanslot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cleanslot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanslot_bookings_total",
			Help: "Total number of bookings created",
		},
		[]string{"payment_method"},
	)

	BookingConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cleanslot_booking_conflicts_total",
			Help: "Booking attempts rejected because the slot was already taken",
		},
	)

	BookingCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cleanslot_booking_cancellations_total",
			Help: "Total number of booking cancellations",
		},
	)

	LoyaltyPointsGrantedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanslot_loyalty_points_granted_total",
			Help: "Loyalty points granted, by ledger event",
		},
		[]string{"event"},
	)

	ReviewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cleanslot_reviews_total",
			Help: "Total number of accepted reviews",
		},
	)

	NotificationsQueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanslot_notifications_queued_total",
			Help: "Notifications pushed to the queue",
		},
		[]string{"event", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(paymentMethod string) {
	BookingsTotal.WithLabelValues(paymentMethod).Inc()
}

func RecordBookingConflict() {
	BookingConflictsTotal.Inc()
}

func RecordBookingCancellation() {
	BookingCancellationsTotal.Inc()
}

func RecordLoyaltyPoints(event string, points int) {
	LoyaltyPointsGrantedTotal.WithLabelValues(event).Add(float64(points))
}

func RecordReview() {
	ReviewsTotal.Inc()
}

func RecordNotification(event, status string) {
	NotificationsQueuedTotal.WithLabelValues(event, status).Inc()
}
