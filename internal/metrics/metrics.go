// Package metrics exposes Prometheus counters for evaluation passes.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/metagraph/internal/evaluator"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the collectors of one application instance.
type Metrics struct {
	// Evaluations counts passes by outcome.
	Evaluations *prometheus.CounterVec
	// NodesEvaluated counts resolved nodes by kind.
	NodesEvaluated *prometheus.CounterVec
	// CycleBreaks counts nodes that received a cycle default, by kind.
	CycleBreaks *prometheus.CounterVec
	// Duration observes the wall time of successful passes.
	Duration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metagraph_evaluations_total",
				Help: "Total number of evaluation passes",
			},
			[]string{"outcome"},
		),
		NodesEvaluated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metagraph_nodes_evaluated_total",
				Help: "Total number of vertices and edges resolved",
			},
			[]string{"kind"},
		),
		CycleBreaks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "metagraph_cycle_breaks_total",
				Help: "Total number of nodes assigned a cycle default",
			},
			[]string{"kind"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "metagraph_evaluation_duration_seconds",
			Help:    "Duration of successful evaluation passes",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.Evaluations, m.NodesEvaluated, m.CycleBreaks, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}
	return m, nil
}

// ObservePass records a successful pass.
func (m *Metrics) ObservePass(result *evaluator.Result, elapsed time.Duration) {
	m.Evaluations.WithLabelValues(OutcomeSuccess).Inc()
	m.Duration.Observe(elapsed.Seconds())

	var vertices, edges int
	for _, key := range result.Values.Keys() {
		if key.IsVertex() {
			vertices++
		} else {
			edges++
		}
	}
	m.NodesEvaluated.WithLabelValues("vertex").Add(float64(vertices))
	m.NodesEvaluated.WithLabelValues("edge").Add(float64(edges))

	vb, eb := result.CycleBreakCount()
	m.CycleBreaks.WithLabelValues("vertex").Add(float64(vb))
	m.CycleBreaks.WithLabelValues("edge").Add(float64(eb))
}

// ObserveFailure records a pass that could not complete.
func (m *Metrics) ObserveFailure() {
	m.Evaluations.WithLabelValues(OutcomeFailure).Inc()
}

// WriteTextfile writes everything in g to path in the text exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
