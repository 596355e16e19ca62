package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/vlogger/internal/logging"
	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/aretw0/vlogger/pkg/ports"
	"github.com/aretw0/vlogger/pkg/prompt"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of the stage spans.
const TracerName = "github.com/aretw0/vlogger/internal/runtime"

// errNoWrite is returned when a stage returns without writing its output.
var errNoWrite = errors.New("stage returned without writing its output")

type stageFunc func(e *Engine, ctx context.Context, b *domain.Builder) error

// Engine drives the pipeline state machine one stage at a time.
type Engine struct {
	model   ports.Model
	prompts prompt.Catalog
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
	tracer  trace.Tracer
	stages  map[domain.Stage]stageFunc
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithTracer overrides the tracer taken from the global provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		if tracer != nil {
			e.tracer = tracer
		}
	}
}

// NewEngine creates an engine that asks model for every stage using the given prompts.
func NewEngine(model ports.Model, prompts prompt.Catalog, opts ...Option) *Engine {
	e := &Engine{
		model:   model,
		prompts: prompts,
		logger:  logging.NewNop(),
		tracer:  otel.Tracer(TracerName),
		stages: map[domain.Stage]stageFunc{
			domain.StageExplorer:  (*Engine).explore,
			domain.StageFoodie:    (*Engine).suggestFoods,
			domain.StageGuide:     (*Engine).planItinerary,
			domain.StageVlogger:   (*Engine).narrate,
			domain.StageEvaluator: (*Engine).evaluate,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stages returns the working stages in execution order.
func (e *Engine) Stages() []domain.Stage {
	return domain.Pipeline()
}

// Start seeds a new run at the entry stage.
func (e *Engine) Start(ctx context.Context, location string, prefs domain.Prefs) *domain.Builder {
	return domain.NewBuilder(location, prefs)
}

// Step runs exactly the stage the builder is waiting for.
// Stage failures are returned as *domain.StageError.
func (e *Engine) Step(ctx context.Context, b *domain.Builder) error {
	stage := b.Stage()
	if stage.Terminal() {
		return domain.ErrTerminated
	}

	run, ok := e.stages[stage]
	if !ok {
		return &domain.StageError{Stage: stage, Err: fmt.Errorf("no handler for stage %q", stage)}
	}

	ctx, span := e.tracer.Start(ctx, "vlogger.stage",
		trace.WithAttributes(attribute.String("stage", stage.String())),
	)
	defer span.End()

	start := time.Now()
	e.emitStageEnter(ctx, b, stage)

	err := run(e, ctx, b)
	if err == nil && b.Stage() == stage {
		err = errNoWrite
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		err = &domain.StageError{Stage: stage, Err: err}
	}

	e.emitStageLeave(ctx, b, stage, time.Since(start), err)
	return err
}

// Run executes every stage in order and returns the finished state.
// The first failing stage aborts the run; no partial state is returned.
func (e *Engine) Run(ctx context.Context, location string, prefs domain.Prefs) (*domain.State, error) {
	start := time.Now()
	e.emitRunStart(ctx, location)

	b := e.Start(ctx, location, prefs)
	for !b.Done() {
		if err := e.Step(ctx, b); err != nil {
			e.emitRunEnd(ctx, location, time.Since(start), 0, err)
			return nil, err
		}
	}

	state, err := b.Build()
	if err != nil {
		e.emitRunEnd(ctx, location, time.Since(start), 0, err)
		return nil, err
	}

	e.emitRunEnd(ctx, location, time.Since(start), state.EvaluationScore, nil)
	return state, nil
}

func (e *Engine) emitRunStart(ctx context.Context, location string) {
	if e.hooks.OnRunStart == nil {
		return
	}
	e.hooks.OnRunStart(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunStart, Location: location},
	})
}

func (e *Engine) emitRunEnd(ctx context.Context, location string, d time.Duration, score float64, err error) {
	if e.hooks.OnRunEnd == nil {
		return
	}
	e.hooks.OnRunEnd(ctx, &domain.RunEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRunEnd, Location: location},
		Duration:  d,
		Score:     score,
		Err:       err,
	})
}

func (e *Engine) emitStageEnter(ctx context.Context, b *domain.Builder, stage domain.Stage) {
	if e.hooks.OnStageEnter == nil {
		return
	}
	e.hooks.OnStageEnter(ctx, &domain.StageEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStageEnter, Location: b.Location()},
		Stage:     stage,
	})
}

func (e *Engine) emitStageLeave(ctx context.Context, b *domain.Builder, stage domain.Stage, d time.Duration, err error) {
	if e.hooks.OnStageLeave == nil {
		return
	}
	e.hooks.OnStageLeave(ctx, &domain.StageEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStageLeave, Location: b.Location()},
		Stage:     stage,
		Duration:  d,
		Err:       err,
	})
}
