// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScoreRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_requests_total",
			Help: "Total number of credit score requests by outcome",
		},
		[]string{"outcome"},
	)

	ScoreRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "score_request_errors_total",
			Help: "Total number of failed credit score requests by error code",
		},
		[]string{"error_code"},
	)

	ScoreRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "score_request_duration_seconds",
			Help: "Duration of credit score request handling in seconds",
		},
		[]string{"outcome"},
	)

	CreditScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "credit_scores",
			Help:    "Distribution of computed credit scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)
