// Package observability wires engine hooks into Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/ramp/pkg/domain"
	"github.com/aretw0/ramp/pkg/engine"
)

// Metrics holds the Prometheus collectors for one palette engine.
type Metrics struct {
	OpsApplied  *prometheus.CounterVec
	OpsRejected *prometheus.CounterVec
	Undos       prometheus.Counter
	Redos       prometheus.Counter
	Affected    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer for the usual global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OpsApplied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ramp_operations_applied_total",
				Help: "Total number of successfully applied operations",
			},
			[]string{"kind"},
		),
		OpsRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ramp_operations_rejected_total",
				Help: "Total number of rejected operations",
			},
			[]string{"kind"},
		),
		Undos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ramp_undo_total",
			Help: "Total number of undone operations",
		}),
		Redos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ramp_redo_total",
			Help: "Total number of redone operations",
		}),
		Affected: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ramp_operation_affected_addresses",
			Help:    "Number of addresses affected per applied operation",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
	}
	reg.MustRegister(m.OpsApplied, m.OpsRejected, m.Undos, m.Redos, m.Affected)
	return m
}

// Hooks returns engine hooks that feed these collectors.
func (m *Metrics) Hooks() engine.Hooks {
	return engine.Hooks{
		OnApply: func(s domain.Summary) {
			m.OpsApplied.WithLabelValues(string(s.Kind)).Inc()
			m.Affected.Observe(float64(len(s.Affected)))
		},
		OnFailure: func(op domain.Operation, err error) {
			m.OpsRejected.WithLabelValues(string(op.Kind)).Inc()
		},
		OnUndo: func(domain.Summary) {
			m.Undos.Inc()
		},
		OnRedo: func(domain.Summary) {
			m.Redos.Inc()
		},
	}
}

// EvalCacheCollector exposes the evaluator cache counters as gauges read at
// scrape time.
type EvalCacheCollector struct {
	eng    *engine.Engine
	hits   *prometheus.Desc
	misses *prometheus.Desc
}

// NewEvalCacheCollector creates a collector over the given engine and
// registers it with reg.
func NewEvalCacheCollector(reg prometheus.Registerer, eng *engine.Engine) *EvalCacheCollector {
	c := &EvalCacheCollector{
		eng: eng,
		hits: prometheus.NewDesc("ramp_eval_cache_hits_total",
			"Evaluator cache hits", nil, nil),
		misses: prometheus.NewDesc("ramp_eval_cache_misses_total",
			"Evaluator cache misses", nil, nil),
	}
	reg.MustRegister(c)
	return c
}

// Describe implements prometheus.Collector.
func (c *EvalCacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
}

// Collect implements prometheus.Collector.
func (c *EvalCacheCollector) Collect(ch chan<- prometheus.Metric) {
	hits, misses := c.eng.EvalStats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(misses))
}
