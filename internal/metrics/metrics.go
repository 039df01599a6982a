// Package metrics holds the Prometheus collectors of the API process.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Review decisions and login results used as label values
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"

	LoginSucceeded = "success"
	LoginFailed    = "failure"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moapyr_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moapyr_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// UploadsInitialized counts issued upload handoffs
	UploadsInitialized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moapyr_uploads_initialized_total",
		Help: "Uploads initialized",
	})

	// UploadsFinalized counts resources moved to review
	UploadsFinalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moapyr_uploads_finalized_total",
		Help: "Uploads finalized and queued for review",
	})

	// DownloadsIssued counts download handoffs
	DownloadsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "moapyr_downloads_issued_total",
		Help: "Download handoffs issued",
	})

	// Reviews counts moderation decisions by decision
	Reviews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moapyr_reviews_total",
		Help: "Moderation decisions",
	}, []string{"decision"})

	// Logins counts admin login attempts by result
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "moapyr_logins_total",
		Help: "Admin login attempts",
	}, []string{"result"})
)

// Middleware records request count and latency labelled by chi route pattern
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := routePattern(r)
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// routePattern keeps label cardinality bounded: ids and object keys collapse
// into their route placeholders, unmatched paths into one label
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "unmatched"
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return "unmatched"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
