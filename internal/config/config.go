// Package config loads the service configuration.
//
// Sources are layered, later ones winning: built-in defaults, a .env file,
// a YAML file, then environment variables prefixed with VLOGGER_. A few
// well-known unprefixed names (GEMINI_MODEL, GOOGLE_API_KEY, DEMO_MODE, PORT,
// REDIS_ADDR) are accepted as fallbacks.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment variable.
	EnvPrefix = "VLOGGER"
	// EnvConfigFile names the YAML file when no path is given explicitly.
	EnvConfigFile = EnvPrefix + "_CONFIG"
)

// Archive backends.
const (
	ArchiveNone   = "none"
	ArchiveMemory = "memory"
	ArchiveRedis  = "redis"
)

// Config is the full service configuration.
type Config struct {
	Port        int      `yaml:"port" envconfig:"PORT"`
	Model       string   `yaml:"model" envconfig:"GEMINI_MODEL"`
	APIKey      string   `yaml:"api_key" envconfig:"GOOGLE_API_KEY"`
	Temperature float32  `yaml:"temperature" split_words:"true"`
	DemoMode    Toggle   `yaml:"demo_mode" envconfig:"DEMO_MODE"`
	CORSOrigins []string `yaml:"cors_origins" split_words:"true"`

	Archive       string        `yaml:"archive"`
	RedisAddr     string        `yaml:"redis_addr" envconfig:"REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" split_words:"true"`
	RedisDB       int           `yaml:"redis_db" split_words:"true"`
	RedisPrefix   string        `yaml:"redis_prefix" split_words:"true"`
	RedisTTL      time.Duration `yaml:"redis_ttl" split_words:"true"`

	PromptsDir   string `yaml:"prompts_dir" split_words:"true"`
	Metrics      Toggle `yaml:"metrics"`
	LogLevel     string `yaml:"log_level" split_words:"true"`
	MaxInputSize int    `yaml:"max_input_size" split_words:"true"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:        8000,
		Model:       "gemini-1.5-flash",
		Temperature: 0.7,
		CORSOrigins: []string{
			"http://localhost:3000",
			"https://travelvlogger.netlify.app",
		},
		Archive:      ArchiveNone,
		RedisAddr:    "localhost:6379",
		RedisPrefix:  "vlogger:run:",
		RedisTTL:     24 * time.Hour,
		Metrics:      true,
		LogLevel:     "info",
		MaxInputSize: 4096,
	}
}

// Load builds the configuration. path may be empty, in which case VLOGGER_CONFIG
// is consulted; a missing default file is not an error, a missing explicit one is.
func Load(path string) (*Config, error) {
	// .env never overrides variables already set in the process.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	c := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfigFile)
		explicit = path != ""
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &c); err != nil {
				return nil, fmt.Errorf("unmarshaling config file: %w", err)
			}
		case os.IsNotExist(err) && !explicit:
		default:
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Archive {
	case "", ArchiveNone, ArchiveMemory, ArchiveRedis:
	default:
		return fmt.Errorf("invalid archive %q: must be one of none, memory, redis", c.Archive)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("invalid max input size %d", c.MaxInputSize)
	}
	if c.Archive == ArchiveRedis && c.RedisAddr == "" {
		return fmt.Errorf("missing required configuration: redis_addr / %s_REDIS_ADDR", EnvPrefix)
	}
	return nil
}

// Toggle is a boolean that accepts 1, true and yes (any case) as on.
// Any other value is off.
type Toggle bool

// Decode implements envconfig.Decoder.
func (t *Toggle) Decode(value string) error {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		*t = true
	default:
		*t = false
	}
	return nil
}

// UnmarshalYAML accepts both YAML booleans and the strings Decode understands.
func (t *Toggle) UnmarshalYAML(value *yaml.Node) error {
	return t.Decode(value.Value)
}

// Enabled reports whether the toggle is on.
func (t Toggle) Enabled() bool {
	return bool(t)
}
