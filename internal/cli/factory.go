package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/vlogger"
	"github.com/aretw0/vlogger/internal/config"
	"github.com/aretw0/vlogger/pkg/adapters/gemini"
	loamAdapter "github.com/aretw0/vlogger/pkg/adapters/loam"
	"github.com/aretw0/vlogger/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/vlogger/pkg/adapters/redis"
	"github.com/aretw0/vlogger/pkg/observability"
	"github.com/aretw0/vlogger/pkg/ports"
	"github.com/aretw0/vlogger/pkg/prompt"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrMissingAPIKey is returned when the real pipeline is requested without credentials.
var ErrMissingAPIKey = errors.New("missing required configuration: GOOGLE_API_KEY (or enable DEMO_MODE)")

// Runtime bundles the engine with the resources it owns.
type Runtime struct {
	Engine  *vlogger.Engine
	Metrics *observability.Metrics
	closers []func() error
}

// Close releases the archive connection, if any.
func (r *Runtime) Close() error {
	var errs []error
	for _, c := range r.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// BuildOption tweaks how the runtime is assembled.
type BuildOption func(*buildOptions)

type buildOptions struct {
	model      ports.Model
	registerer prometheus.Registerer
}

// WithModel replaces the Gemini model, mainly for tests.
func WithModel(m ports.Model) BuildOption {
	return func(o *buildOptions) {
		o.model = m
	}
}

// WithRegisterer sets where metrics are registered. Defaults to the Prometheus default registry.
func WithRegisterer(reg prometheus.Registerer) BuildOption {
	return func(o *buildOptions) {
		o.registerer = reg
	}
}

// Build initializes an engine from the configuration.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...BuildOption) (*Runtime, error) {
	o := buildOptions{registerer: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}

	rt := &Runtime{}
	engineOpts := []vlogger.Option{
		vlogger.WithLogger(logger),
		vlogger.WithDemoMode(cfg.DemoMode.Enabled()),
		vlogger.WithMaxInputSize(cfg.MaxInputSize),
		vlogger.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}

	// 1. Model
	if !cfg.DemoMode.Enabled() {
		model := o.model
		if model == nil {
			if cfg.APIKey == "" {
				return nil, ErrMissingAPIKey
			}
			g, err := gemini.New(ctx, cfg.APIKey,
				gemini.WithModelName(cfg.Model),
				gemini.WithTemperature(cfg.Temperature),
			)
			if err != nil {
				return nil, fmt.Errorf("error initializing model: %w", err)
			}
			logger.Debug("Model ready", "model", g.Name())
			model = g
		}
		engineOpts = append(engineOpts, vlogger.WithModel(model))
	}

	// 2. Prompts
	if cfg.PromptsDir != "" {
		loader, err := loamAdapter.Open(cfg.PromptsDir)
		if err != nil {
			return nil, fmt.Errorf("error opening prompts: %w", err)
		}
		catalog, err := loader.Load(ctx, prompt.Defaults())
		if err != nil {
			return nil, fmt.Errorf("error loading prompts: %w", err)
		}
		logger.Info("Prompt overrides loaded", "dir", cfg.PromptsDir)
		engineOpts = append(engineOpts, vlogger.WithPrompts(catalog))
	}

	// 3. Archive
	switch cfg.Archive {
	case config.ArchiveMemory:
		engineOpts = append(engineOpts, vlogger.WithRunStore(memory.NewStore()))
	case config.ArchiveRedis:
		store, err := redisAdapter.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redisAdapter.WithPrefix(cfg.RedisPrefix),
			redisAdapter.WithTTL(cfg.RedisTTL),
		)
		if err != nil {
			return nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		rt.closers = append(rt.closers, store.Close)
		engineOpts = append(engineOpts, vlogger.WithRunStore(store))
		logger.Info("Archiving runs to redis", "addr", cfg.RedisAddr, "ttl", cfg.RedisTTL)
	}

	// 4. Metrics
	if cfg.Metrics.Enabled() {
		rt.Metrics = observability.NewMetrics(o.registerer)
		engineOpts = append(engineOpts, vlogger.WithMetrics(rt.Metrics))
	}

	engine, err := vlogger.New(engineOpts...)
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	rt.Engine = engine
	return rt, nil
}
