package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	validationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parogest_validation_failures_total",
		Help: "Count of field-level validation failures by entity and error code",
	}, []string{"entity", "code"})

	validationRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parogest_validation_runs_total",
		Help: "Count of validation passes by entity and outcome",
	}, []string{"entity", "result"})

	hashDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "parogest_password_hash_duration_seconds",
		Help:    "Duration of the slow credential hash, by operation",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	uniquenessConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parogest_uniqueness_conflicts_total",
		Help: "Count of uniqueness conflicts reported by the persistence layer",
	}, []string{"entity"})

	cacheOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parogest_contact_cache_operations_total",
		Help: "Count of contact cache lookups by result",
	}, []string{"result"})
)

// ObserveValidation records a validation pass and each of its field errors.
func ObserveValidation(entity string, errorCodes []string) {
	result := "ok"
	if len(errorCodes) > 0 {
		result = "rejected"
	}
	validationRuns.WithLabelValues(entity, result).Inc()
	for _, code := range errorCodes {
		validationFailures.WithLabelValues(entity, code).Inc()
	}
}

// ObserveHash records the duration of a hash or verify operation.
func ObserveHash(operation string, duration time.Duration) {
	hashDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// ObserveConflict increments the uniqueness conflict counter for an entity.
func ObserveConflict(entity string) {
	uniquenessConflicts.WithLabelValues(entity).Inc()
}

// ObserveCache records a contact cache lookup result ("hit" or "miss").
func ObserveCache(result string) {
	cacheOperations.WithLabelValues(result).Inc()
}
