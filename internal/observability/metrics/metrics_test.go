package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findMetric(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) *dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, metric := range fam.GetMetric() {
			if labelsMatch(metric.GetLabel(), labels) {
				return metric
			}
		}
	}
	t.Fatalf("metric %s %v not found", name, labels)
	return nil
}

func labelsMatch(pairs []*dto.LabelPair, want map[string]string) bool {
	if len(pairs) != len(want) {
		return false
	}
	for _, p := range pairs {
		if want[p.GetName()] != p.GetValue() {
			return false
		}
	}
	return true
}

func TestIntakeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewIntakeMetrics(reg)

	m.ObserveSubmission("beta-signup", "accepted")
	m.ObserveSubmission("beta-signup", "accepted")
	m.ObserveSinkAttempt("beta-signup", "webhook", false, 0.2)
	m.ObserveSinkAttempt("beta-signup", "sheets", true, 0.1)
	m.ObserveFallback("beta-feedback")

	accepted := findMetric(t, reg, "quicksay_intake_submissions_total", map[string]string{"form": "beta-signup", "outcome": "accepted"})
	assert.Equal(t, 2.0, accepted.GetCounter().GetValue())

	failed := findMetric(t, reg, "quicksay_intake_sink_attempts_total", map[string]string{"form": "beta-signup", "sink": "webhook", "status": "failed"})
	assert.Equal(t, 1.0, failed.GetCounter().GetValue())

	latency := findMetric(t, reg, "quicksay_intake_sink_latency_seconds", map[string]string{"form": "beta-signup", "sink": "sheets"})
	assert.Equal(t, uint64(1), latency.GetHistogram().GetSampleCount())

	fallback := findMetric(t, reg, "quicksay_intake_log_fallback_total", map[string]string{"form": "beta-feedback"})
	assert.Equal(t, 1.0, fallback.GetCounter().GetValue())
}

func TestIntakeMetrics_NilSafe(t *testing.T) {
	var m *IntakeMetrics
	m.ObserveSubmission("beta-signup", "accepted")
	m.ObserveSinkAttempt("beta-signup", "webhook", true, 0)
	m.ObserveFallback("beta-signup")
}
