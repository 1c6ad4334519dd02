package pipeline

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/runnerr0/kickback/internal/activity"
)

// Run outcomes recorded by Metrics.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Metrics exposes counters and histograms for receipt runs. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	runsTotal    *prometheus.CounterVec
	recordsTotal *prometheus.CounterVec
	runDuration  prometheus.Histogram
}

// NewMetrics registers run metrics with reg, or the default registerer
// when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kickback",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Receipt runs by outcome",
		}, []string{"outcome"}),
		recordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kickback",
			Subsystem: "pipeline",
			Name:      "records_total",
			Help:      "Activity records aggregated, by category",
		}, []string{"category"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "kickback",
			Subsystem: "pipeline",
			Name:      "run_duration_seconds",
			Help:      "Time to turn located activity files into a receipt",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.runsTotal, m.recordsTotal, m.runDuration)
	return m
}

func (m *Metrics) ObserveRun(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.runsTotal.WithLabelValues(outcome).Inc()
	m.runDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveRecords(c activity.Category, n int) {
	if m == nil {
		return
	}
	m.recordsTotal.WithLabelValues(string(c)).Add(float64(n))
}
