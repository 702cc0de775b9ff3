package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the engine's Prometheus collectors. All recording methods
// are nil-safe so the engine can run without a registry in tests.
type Metrics struct {
	fetchAttempts  *prometheus.CounterVec
	sourceFailures *prometheus.CounterVec
	recordsTotal   *prometheus.CounterVec
	batchesTotal   prometheus.Counter
	batchDuration  prometheus.Summary
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{}

	m.fetchAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "webwatch",
		Name:      "fetch_attempts_total",
		Help:      "Number of HTTP fetch attempts by outcome",
	}, []string{"outcome"})
	m.sourceFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "webwatch",
		Name:      "source_failures_total",
		Help:      "Number of sources whose task failed after all retry attempts",
	}, []string{"source"})
	m.recordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "webwatch",
		Name:      "records_total",
		Help:      "Number of records extracted per source",
	}, []string{"source"})
	m.batchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "webwatch",
		Name:      "batches_total",
		Help:      "Number of aggregation batches executed",
	})
	m.batchDuration = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "webwatch",
		Name:      "batch_duration_seconds",
		Help:      "Time spent executing one full aggregation batch",
	})

	reg.MustRegister(
		m.fetchAttempts, m.sourceFailures, m.recordsTotal,
		m.batchesTotal, m.batchDuration,
	)

	return m
}

func (m *Metrics) CountFetchAttempt(outcome string) {
	if m == nil {
		return
	}
	m.fetchAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CountSourceFailure(source string) {
	if m == nil {
		return
	}
	m.sourceFailures.WithLabelValues(source).Inc()
}

func (m *Metrics) CountRecords(source string, n int) {
	if m == nil {
		return
	}
	m.recordsTotal.WithLabelValues(source).Add(float64(n))
}

func (m *Metrics) ObserveBatch(d time.Duration) {
	if m == nil {
		return
	}
	m.batchesTotal.Inc()
	m.batchDuration.Observe(d.Seconds())
}
