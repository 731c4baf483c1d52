package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuizScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestify_quiz_scored_total",
			Help: "Quiz submissions scored, by whether any genre vote was cast",
		},
		[]string{"signal"},
	)

	QuizSkippedAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestify_quiz_skipped_answers_total",
			Help: "Answers that cast no vote",
		},
		[]string{"reason"}, // unknown_key, beyond_battery
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "suggestify_recommendations_total",
			Help: "Genre filter calls by outcome",
		},
		[]string{"outcome"}, // match, empty
	)

	RecommendResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "suggestify_recommend_result_size",
			Help:    "Shows returned per recommendation",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)

	CatalogShows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "suggestify_catalog_shows",
			Help: "Shows in the active catalog",
		},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "suggestify_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordRecommendation counts one filter call returning n shows.
func RecordRecommendation(n int) {
	outcome := "match"
	if n == 0 {
		outcome = "empty"
	}
	Recommendations.WithLabelValues(outcome).Inc()
	RecommendResultSize.Observe(float64(n))
}

// Middleware observes latency per chi route pattern, so path parameters do
// not explode label cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}
