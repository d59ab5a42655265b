package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LifecycleMetrics records client, lead and provisioning operations.
type LifecycleMetrics struct {
	duration     *prometheus.HistogramVec
	outcomes     *prometheus.CounterVec
	stepFailures *prometheus.CounterVec
	cascadeRows  *prometheus.CounterVec
}

// NewLifecycleMetrics registers the lifecycle metrics on the provided registerer.
// A nil registerer yields a recorder whose methods are no-ops.
func NewLifecycleMetrics(reg prometheus.Registerer) *LifecycleMetrics {
	if reg == nil {
		return &LifecycleMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lifecycle_operation_duration_seconds",
		Help:    "Duration of lifecycle operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lifecycle_operations_total",
		Help: "Lifecycle operations by outcome.",
	}, []string{"operation", "outcome"})
	stepFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lifecycle_step_failures_total",
		Help: "Best-effort steps that failed without aborting their operation.",
	}, []string{"step"})
	cascadeRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cascade_rows_deleted_total",
		Help: "Rows removed by client cascade deletion.",
	}, []string{"table"})
	reg.MustRegister(duration, outcomes, stepFailures, cascadeRows)
	return &LifecycleMetrics{
		duration:     duration,
		outcomes:     outcomes,
		stepFailures: stepFailures,
		cascadeRows:  cascadeRows,
	}
}

// Observe records the duration and outcome of one operation.
func (m *LifecycleMetrics) Observe(operation string, started time.Time, err error) {
	if m == nil || m.duration == nil {
		return
	}
	op := normalizeLabel(operation)
	m.duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.outcomes.WithLabelValues(op, outcome).Inc()
}

// IncStepFailure counts a best-effort step that was skipped.
func (m *LifecycleMetrics) IncStepFailure(step string) {
	if m == nil || m.stepFailures == nil {
		return
	}
	m.stepFailures.WithLabelValues(normalizeLabel(step)).Inc()
}

// AddCascadeRows adds rows deleted from table.
func (m *LifecycleMetrics) AddCascadeRows(table string, rows int64) {
	if m == nil || m.cascadeRows == nil || rows <= 0 {
		return
	}
	m.cascadeRows.WithLabelValues(normalizeLabel(table)).Add(float64(rows))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
