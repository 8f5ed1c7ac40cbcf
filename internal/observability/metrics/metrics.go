package metrics

import "github.com/prometheus/client_golang/prometheus"

// IntakeMetrics exposes counters/histograms for form intake and sink delivery.
type IntakeMetrics struct {
	submissionsTotal *prometheus.CounterVec
	sinkAttempts     *prometheus.CounterVec
	sinkLatency      *prometheus.HistogramVec
	fallbackTotal    *prometheus.CounterVec
}

func NewIntakeMetrics(reg prometheus.Registerer) *IntakeMetrics {
	m := &IntakeMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quicksay",
			Subsystem: "intake",
			Name:      "submissions_total",
			Help:      "Total form submissions by outcome",
		}, []string{"form", "outcome"}),
		sinkAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quicksay",
			Subsystem: "intake",
			Name:      "sink_attempts_total",
			Help:      "Total sink delivery attempts",
		}, []string{"form", "sink", "status"}),
		sinkLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quicksay",
			Subsystem: "intake",
			Name:      "sink_latency_seconds",
			Help:      "Latency of sink delivery attempts",
			Buckets:   prometheus.DefBuckets,
		}, []string{"form", "sink"}),
		fallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quicksay",
			Subsystem: "intake",
			Name:      "log_fallback_total",
			Help:      "Submissions accepted without any sink delivering them",
		}, []string{"form"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.sinkAttempts, m.sinkLatency, m.fallbackTotal)
	return m
}

// ObserveSubmission counts a request outcome: accepted, rejected, spam or error.
func (m *IntakeMetrics) ObserveSubmission(form, outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(form, outcome).Inc()
}

func (m *IntakeMetrics) ObserveSinkAttempt(form, sink string, delivered bool, seconds float64) {
	if m == nil {
		return
	}
	status := "failed"
	if delivered {
		status = "delivered"
	}
	m.sinkAttempts.WithLabelValues(form, sink, status).Inc()
	m.sinkLatency.WithLabelValues(form, sink).Observe(seconds)
}

func (m *IntakeMetrics) ObserveFallback(form string) {
	if m == nil {
		return
	}
	m.fallbackTotal.WithLabelValues(form).Inc()
}
