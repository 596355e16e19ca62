package vlogger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/vlogger/internal/logging"
	"github.com/aretw0/vlogger/internal/runtime"
	"github.com/aretw0/vlogger/internal/sanitize"
	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/aretw0/vlogger/pkg/observability"
	"github.com/aretw0/vlogger/pkg/ports"
	"github.com/aretw0/vlogger/pkg/prompt"
	"github.com/google/uuid"
)

// Version of the service, reported by /info and the CLI.
const Version = "0.1.0"

// APIVersion of the HTTP contract.
const APIVersion = "v1"

// ErrNoModel is returned by New when neither a model nor demo mode is configured.
var ErrNoModel = errors.New("a model is required unless demo mode is enabled")

// Engine is the high-level entry point of the pipeline.
// It sanitizes requests, short-circuits demo mode, runs the stages and archives results.
type Engine struct {
	runtime      *runtime.Engine
	model        ports.Model
	prompts      prompt.Catalog
	store        ports.RunStore
	metrics      *observability.Metrics
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	demo         bool
	maxInputSize int
	newID        func() string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithModel sets the model answering every stage.
func WithModel(m ports.Model) Option {
	return func(e *Engine) {
		e.model = m
	}
}

// WithPrompts replaces the built-in prompt catalog.
func WithPrompts(c prompt.Catalog) Option {
	return func(e *Engine) {
		e.prompts = c
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = observability.Combine(e.hooks, hooks)
	}
}

// WithMetrics records run and stage metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
		if m != nil {
			e.hooks = observability.Combine(e.hooks, m.Hooks())
		}
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDemoMode answers every request with the canned demo result, without calling the model.
func WithDemoMode(enabled bool) Option {
	return func(e *Engine) {
		e.demo = enabled
	}
}

// WithRunStore archives every result under a fresh run ID.
func WithRunStore(s ports.RunStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithMaxInputSize limits the location length in bytes.
func WithMaxInputSize(n int) Option {
	return func(e *Engine) {
		e.maxInputSize = n
	}
}

// New initializes a new Engine.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.model == nil && !eng.demo {
		return nil, ErrNoModel
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.prompts == nil {
		eng.prompts = prompt.Defaults()
	}
	if err := eng.prompts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid prompts: %w", err)
	}

	eng.runtime = runtime.NewEngine(
		eng.model,
		eng.prompts,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	)
	return eng, nil
}

// Run executes the pipeline and returns the full state, including the evaluator's improvements.
func (e *Engine) Run(ctx context.Context, req domain.Request) (*domain.State, error) {
	location, err := sanitize.Location(req.Location, e.maxInputSize)
	if err != nil {
		e.logger.Warn("Request rejected", "error", err, "size", len(req.Location))
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
	}

	if e.demo {
		e.logger.Debug("Demo mode, skipping pipeline", "location", location)
		if e.metrics != nil {
			e.metrics.ObserveDemo()
		}
		return demoState(location, req.UserPrefs), nil
	}

	return e.runtime.Run(ctx, location, req.UserPrefs)
}

// Generate executes the pipeline and returns its public result.
// When a run store is configured the result is archived and RunID is set.
func (e *Engine) Generate(ctx context.Context, req domain.Request) (*domain.Result, error) {
	state, err := e.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	result := state.Result()
	if e.store != nil {
		id := e.newID()
		if err := e.store.Save(ctx, id, result); err != nil {
			// Archive failures never fail the run.
			e.logger.Error("Failed to archive run", "run_id", id, "error", err)
		} else {
			result.RunID = id
		}
	}
	return result, nil
}

// Lookup returns an archived result.
func (e *Engine) Lookup(ctx context.Context, runID string) (*domain.Result, error) {
	if e.store == nil {
		return nil, domain.ErrArchiveDisabled
	}
	return e.store.Load(ctx, runID)
}

// Runs lists the IDs of archived results.
func (e *Engine) Runs(ctx context.Context) ([]string, error) {
	if e.store == nil {
		return nil, domain.ErrArchiveDisabled
	}
	return e.store.List(ctx)
}

// Forget removes an archived result. Unknown IDs return domain.ErrRunNotFound.
func (e *Engine) Forget(ctx context.Context, runID string) error {
	if e.store == nil {
		return domain.ErrArchiveDisabled
	}
	if _, err := e.store.Load(ctx, runID); err != nil {
		return err
	}
	if err := e.store.Delete(ctx, runID); err != nil {
		return err
	}
	e.logger.Debug("Run forgotten", "run_id", runID)
	return nil
}

// Stages returns the pipeline stages in execution order.
func (e *Engine) Stages() []domain.Stage {
	return e.runtime.Stages()
}

// DemoMode reports whether the engine answers with the canned result.
func (e *Engine) DemoMode() bool {
	return e.demo
}

func demoState(location string, prefs domain.Prefs) *domain.State {
	r := domain.DemoResult(location, prefs)
	return &domain.State{
		Location:        r.Location,
		UserPrefs:       r.UserPrefs,
		Attractions:     r.Attractions,
		Foods:           r.Foods,
		Itinerary:       r.Itinerary,
		Narration:       r.Narration,
		EvaluationScore: r.EvaluationScore,
		Stage:           domain.StageDone,
		History:         domain.Pipeline(),
	}
}
