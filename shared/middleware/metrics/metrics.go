// Package metrics provides Prometheus HTTP metrics middleware and the
// domain counters recorded by the services.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	messagesPosted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "huddle_messages_posted_total",
			Help: "Messages posted, by kind (top_level or reply)",
		},
		[]string{"kind"},
	)

	reactionsToggled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "huddle_reactions_toggled_total",
			Help: "Reaction toggles, by resulting action",
		},
		[]string{"action"},
	)

	notificationsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "huddle_notifications_failed_total",
			Help: "Notifications that could not be appended to a feed",
		},
	)
)

const (
	KindTopLevel = "top_level"
	KindReply    = "reply"
)

func MessagePosted(kind string) { messagesPosted.WithLabelValues(kind).Inc() }

func ReactionToggled(action string) { reactionsToggled.WithLabelValues(action).Inc() }

func NotificationFailed() { notificationsDropped.Inc() }

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns HTTP middleware that records Prometheus metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &responseWriter{w, http.StatusOK}
		next.ServeHTTP(wrapped, r)

		// Route pattern keeps ids out of the label set
		path := "unmatched"
		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
			if pattern := routeCtx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
