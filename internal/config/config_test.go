package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/vlogger/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so no stray .env is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	c, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, c.Port)
	assert.Equal(t, "gemini-1.5-flash", c.Model)
	assert.InDelta(t, 0.7, c.Temperature, 0.0001)
	assert.False(t, c.DemoMode.Enabled())
	assert.Equal(t, []string{"http://localhost:3000", "https://travelvlogger.netlify.app"}, c.CORSOrigins)
	assert.Equal(t, config.ArchiveNone, c.Archive)
	assert.True(t, c.Metrics.Enabled())
	assert.Equal(t, 4096, c.MaxInputSize)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := chdir(t)
	path := writeFile(t, dir, "vlogger.yaml", `
port: 9000
model: gemini-2.0-flash
demo_mode: "yes"
archive: redis
redis_addr: cache:6379
redis_ttl: 1h
cors_origins:
  - https://example.com
`)

	t.Setenv("GEMINI_MODEL", "gemini-pro")
	t.Setenv("VLOGGER_PORT", "9100")
	t.Setenv("VLOGGER_LOG_LEVEL", "debug")

	c, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, c.Port, "prefixed env wins over yaml")
	assert.Equal(t, "gemini-pro", c.Model, "unprefixed alias is accepted")
	assert.True(t, c.DemoMode.Enabled())
	assert.Equal(t, config.ArchiveRedis, c.Archive)
	assert.Equal(t, "cache:6379", c.RedisAddr)
	assert.Equal(t, time.Hour, c.RedisTTL)
	assert.Equal(t, []string{"https://example.com"}, c.CORSOrigins)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	writeFile(t, dir, ".env", "GOOGLE_API_KEY=from-dotenv\nVLOGGER_MAX_INPUT_SIZE=128\n")
	t.Cleanup(func() {
		os.Unsetenv("GOOGLE_API_KEY")
		os.Unsetenv("VLOGGER_MAX_INPUT_SIZE")
	})

	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", c.APIKey)
	assert.Equal(t, 128, c.MaxInputSize)
}

func TestLoad_ConfigFromEnvVar(t *testing.T) {
	dir := chdir(t)
	path := writeFile(t, dir, "c.yaml", "archive: memory\n")
	t.Setenv(config.EnvConfigFile, path)

	c, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.ArchiveMemory, c.Archive)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("explicit file missing", func(t *testing.T) {
		chdir(t)
		_, err := config.Load("does-not-exist.yaml")
		assert.ErrorContains(t, err, "reading config file")
	})

	t.Run("bad yaml", func(t *testing.T) {
		dir := chdir(t)
		path := writeFile(t, dir, "bad.yaml", "port: [1, 2\n")
		_, err := config.Load(path)
		assert.ErrorContains(t, err, "unmarshaling config file")
	})

	t.Run("bad env", func(t *testing.T) {
		chdir(t)
		t.Setenv("VLOGGER_PORT", "eighty")
		_, err := config.Load("")
		assert.ErrorContains(t, err, "parsing environment variables")
	})

	t.Run("bad archive", func(t *testing.T) {
		chdir(t)
		t.Setenv("VLOGGER_ARCHIVE", "s3")
		_, err := config.Load("")
		assert.ErrorContains(t, err, "invalid archive")
	})
}

func TestToggle_Decode(t *testing.T) {
	cases := map[string]bool{
		"1":     true,
		"true":  true,
		"TRUE":  true,
		"Yes":   true,
		" yes ": true,
		"0":     false,
		"false": false,
		"on":    false,
		"":      false,
	}
	for in, want := range cases {
		var tg config.Toggle
		require.NoError(t, tg.Decode(in))
		assert.Equal(t, want, tg.Enabled(), in)
	}
}
