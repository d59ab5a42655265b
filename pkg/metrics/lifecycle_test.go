package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestLifecycleMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewLifecycleMetrics(reg)

	started := time.Now().Add(-250 * time.Millisecond)
	metrics.Observe("client.create", started, nil)
	metrics.Observe("client.create", started, errors.New("boom"))
	metrics.IncStepFailure("vendor")
	metrics.AddCascadeRows("budget_items", 8)
	metrics.AddCascadeRows("guests", 0)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "lifecycle_operations_total", map[string]string{"operation": "client.create", "outcome": "failure"}); err != nil {
		t.Fatalf("fetch failure: %v", err)
	} else if got != 1 {
		t.Fatalf("expected failure=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "lifecycle_step_failures_total", map[string]string{"step": "vendor"}); err != nil {
		t.Fatalf("fetch step failures: %v", err)
	} else if got != 1 {
		t.Fatalf("expected step failures=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "cascade_rows_deleted_total", map[string]string{"table": "budget_items"}); err != nil {
		t.Fatalf("fetch cascade rows: %v", err)
	} else if got != 8 {
		t.Fatalf("expected 8 rows, got %f", got)
	}
	if _, err := fetchCounterValue(mfs, "cascade_rows_deleted_total", map[string]string{"table": "guests"}); err == nil {
		t.Fatal("zero-row tables should not create a series")
	}

	if got, err := fetchHistogramSum(mfs, "lifecycle_operation_duration_seconds", map[string]string{"operation": "client.create"}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestNilLifecycleMetricsAreNoops(t *testing.T) {
	var nilMetrics *LifecycleMetrics
	nilMetrics.Observe("op", time.Now(), nil)
	nilMetrics.IncStepFailure("step")
	nilMetrics.AddCascadeRows("table", 3)

	unregistered := NewLifecycleMetrics(nil)
	unregistered.Observe("op", time.Now(), nil)
	unregistered.AddCascadeRows("table", 3)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
