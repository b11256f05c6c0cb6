package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkpost_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inkpost_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	Interactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkpost_interactions_total",
			Help: "Total number of blog interactions applied",
		},
		[]string{"type"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inkpost_search_duration_seconds",
			Help:    "Duration of ranked blog searches in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SlugClaimAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "inkpost_slug_claim_attempts",
			Help:    "Number of attempts needed to claim a unique slug",
			Buckets: []float64{1, 2, 3, 5, 10, 25, 50, 100},
		},
	)

	KafkaMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkpost_kafka_messages_total",
			Help: "Total number of consumed kafka messages by result",
		},
		[]string{"topic", "result"},
	)
)

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordInteraction(kind string) {
	Interactions.WithLabelValues(kind).Inc()
}

func RecordSearch(duration time.Duration) {
	SearchDuration.Observe(duration.Seconds())
}

func RecordSlugClaim(attempts int) {
	SlugClaimAttempts.Observe(float64(attempts))
}

// RecordKafkaMessage result 取值 ok、skip、retry
func RecordKafkaMessage(topic, result string) {
	KafkaMessages.WithLabelValues(topic, result).Inc()
}
