package observability

import (
	"context"

	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Run outcomes used as the "outcome" label.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeDemo    = "demo"
)

// Metrics holds the pipeline collectors.
type Metrics struct {
	Runs          *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	StageFailures *prometheus.CounterVec
	Score         prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg (skipped when nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vlogger_runs_total",
				Help: "Total number of pipeline runs by outcome",
			},
			[]string{"outcome"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vlogger_stage_duration_seconds",
				Help:    "Duration of pipeline stages, model call included",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"stage"},
		),
		StageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vlogger_stage_failures_total",
				Help: "Total number of stage failures",
			},
			[]string{"stage"},
		),
		Score: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vlogger_evaluation_score",
				Help:    "Evaluator score of successful runs",
				Buckets: prometheus.LinearBuckets(1, 1, 10),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.StageDuration, m.StageFailures, m.Score)
	}
	return m
}

// Hooks records stage durations, failures and run outcomes.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStageLeave: func(ctx context.Context, e *domain.StageEvent) {
			m.StageDuration.WithLabelValues(e.Stage.String()).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.StageFailures.WithLabelValues(e.Stage.String()).Inc()
			}
		},
		OnRunEnd: func(ctx context.Context, e *domain.RunEvent) {
			if e.Err != nil {
				m.Runs.WithLabelValues(OutcomeFailure).Inc()
				return
			}
			m.Runs.WithLabelValues(OutcomeSuccess).Inc()
			m.Score.Observe(e.Score)
		},
	}
}

// ObserveDemo counts a run answered by the canned demo result.
func (m *Metrics) ObserveDemo() {
	m.Runs.WithLabelValues(OutcomeDemo).Inc()
}
