package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "responder", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "responder", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// RepositoryOperations counts question repository calls by operation and
	// result (ok, invalid, read_error, write_error, error).
	RepositoryOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "responder", Name: "repository_operations_total", Help: "Number of question repository operations by result."},
		[]string{"op", "result"},
	)
	RepositoryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "responder", Name: "repository_operation_duration_seconds", Help: "Latency of question repository operations.", Buckets: prometheus.DefBuckets},
		[]string{"op"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(RepositoryOperations)
	reg.MustRegister(RepositoryDuration)
}
