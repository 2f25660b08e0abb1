package prometheus

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Reservation engine metrics
	ReservationOperationsCounter prometheus.CounterVec
	CheckInOperationsCounter     prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics
func InitMetrics(prefix string) {
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	ReservationOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_reservation_operations_total",
			Help: "Total number of reservation lifecycle operations",
		},
		[]string{"operation", "result"},
	)

	CheckInOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_checkin_operations_total",
			Help: "Total number of QR check-in/check-out attempts",
		},
		[]string{"operation", "result"},
	)
}

// RecordReservationOperation increments the counter for lifecycle operations
func RecordReservationOperation(operation, result string) {
	ReservationOperationsCounter.WithLabelValues(operation, result).Inc()
}

// RecordCheckInOperation increments the counter for kiosk operations
func RecordCheckInOperation(operation, result string) {
	CheckInOperationsCounter.WithLabelValues(operation, result).Inc()
}

// MetricsMiddleware adds prometheus metrics to track HTTP requests
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		method := c.Request.Method
		path := c.FullPath()
		status := strconv.Itoa(c.Writer.Status())

		HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
		HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration)
	}
}
