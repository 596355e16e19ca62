package cli

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/vlogger/internal/config"
	"github.com/aretw0/vlogger/internal/logging"
	"github.com/aretw0/vlogger/internal/testutils"
	"github.com/aretw0/vlogger/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoConfig() *config.Config {
	cfg := config.Default()
	cfg.DemoMode = true
	return &cfg
}

func build(t *testing.T, cfg *config.Config, opts ...BuildOption) *Runtime {
	t.Helper()
	opts = append([]BuildOption{WithRegisterer(prometheus.NewRegistry())}, opts...)
	rt, err := Build(context.Background(), cfg, logging.NewNop(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	return rt
}

func TestBuild_Demo(t *testing.T) {
	rt := build(t, demoConfig())

	assert.True(t, rt.Engine.DemoMode())
	require.NotNil(t, rt.Metrics)

	_, err := rt.Engine.Generate(context.Background(), domain.Request{Location: "New York"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(rt.Metrics.Runs.WithLabelValues("demo")))
}

func TestBuild_MissingAPIKey(t *testing.T) {
	cfg := config.Default()

	_, err := Build(context.Background(), &cfg, logging.NewNop(), WithRegisterer(prometheus.NewRegistry()))
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestBuild_MetricsDisabled(t *testing.T) {
	cfg := demoConfig()
	cfg.Metrics = false

	rt := build(t, cfg)
	assert.Nil(t, rt.Metrics)
}

func TestBuild_MemoryArchive(t *testing.T) {
	cfg := config.Default()
	cfg.Archive = config.ArchiveMemory

	rt := build(t, &cfg, WithModel(testutils.ScriptedModel()))

	result, err := rt.Engine.Generate(context.Background(), domain.Request{Location: "Lisbon"})
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)

	archived, err := rt.Engine.Lookup(context.Background(), result.RunID)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", archived.Location)
	assert.Equal(t, 8.0, archived.EvaluationScore)
}

func TestBuild_RedisArchive(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := demoConfig()
	cfg.Archive = config.ArchiveRedis
	cfg.RedisAddr = mr.Addr()
	cfg.RedisPrefix = "test:"

	rt := build(t, cfg)

	result, err := rt.Engine.Generate(context.Background(), domain.Request{Location: "Osaka"})
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)
	assert.True(t, mr.Exists("test:"+result.RunID))
	assert.Positive(t, mr.TTL("test:"+result.RunID))
}

func TestBuild_PromptOverrides(t *testing.T) {
	dir := testutils.WriteFiles(t, map[string]string{
		"explorer.md": `---
human: Museums in {{.location}} please
---
You only know about museums.`,
	})

	cfg := config.Default()
	cfg.PromptsDir = dir
	model := testutils.ScriptedModel()

	rt := build(t, &cfg, WithModel(model))
	_, err := rt.Engine.Generate(context.Background(), domain.Request{Location: "Madrid"})
	require.NoError(t, err)

	calls := model.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, []domain.Message{
		{Role: domain.RoleSystem, Content: "You only know about museums."},
		{Role: domain.RoleHuman, Content: "Museums in Madrid please"},
	}, calls[0].Messages)
}

func TestBuild_InvalidPrompts(t *testing.T) {
	dir := testutils.WriteFiles(t, map[string]string{
		"guide.md": `---
human: "{{.duration"
---
Broken.`,
	})

	cfg := demoConfig()
	cfg.PromptsDir = dir

	_, err := Build(context.Background(), cfg, logging.NewNop(), WithRegisterer(prometheus.NewRegistry()))
	assert.Error(t, err)
}
