// Package metrics exposes prometheus instrumentation for the parsing
// pipeline. All observation methods are safe on a nil receiver so tests can
// run without a registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pantrylens/backend/internal/domain"
)

// PipelineMetrics instruments the batch pipeline.
type PipelineMetrics struct {
	linesParsed   *prometheus.CounterVec
	batches       prometheus.Counter
	batchDuration prometheus.Histogram
	sinkFailures  prometheus.Counter
}

// NewPipelineMetrics registers the pipeline collectors on reg.
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	m := &PipelineMetrics{
		linesParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantrylens",
			Subsystem: "pipeline",
			Name:      "lines_parsed_total",
			Help:      "Ingredient lines parsed, labelled by match method.",
		}, []string{"method"}),
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pantrylens",
			Subsystem: "pipeline",
			Name:      "batches_total",
			Help:      "Recipe batches processed.",
		}),
		batchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pantrylens",
			Subsystem: "pipeline",
			Name:      "batch_duration_seconds",
			Help:      "Wall time per recipe batch.",
			Buckets:   prometheus.DefBuckets,
		}),
		sinkFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pantrylens",
			Subsystem: "pipeline",
			Name:      "decision_sink_failures_total",
			Help:      "Best-effort decision log writes that failed.",
		}),
	}
	reg.MustRegister(m.linesParsed, m.batches, m.batchDuration, m.sinkFailures)
	return m
}

// ObserveLine counts one parsed line by its match method.
func (m *PipelineMetrics) ObserveLine(method domain.MatchMethod) {
	if m == nil {
		return
	}
	m.linesParsed.WithLabelValues(string(method)).Inc()
}

// ObserveBatch counts one completed batch and records its duration.
func (m *PipelineMetrics) ObserveBatch(d time.Duration) {
	if m == nil {
		return
	}
	m.batches.Inc()
	m.batchDuration.Observe(d.Seconds())
}

// ObserveSinkFailure counts one failed decision-sink write.
func (m *PipelineMetrics) ObserveSinkFailure() {
	if m == nil {
		return
	}
	m.sinkFailures.Inc()
}
