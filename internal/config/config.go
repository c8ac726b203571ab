package config

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"fundraise-backend/internal/core/sampler"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LLMProvider       string        `env:"LLM_PROVIDER" envDefault:"gemini"`
	LLMAPIKey         string        `env:"LLM_API_KEY,notEmpty,required"`
	LLMBaseURL        string        `env:"LLM_BASE_URL"`
	ModelID           string        `env:"MODEL_ID" envDefault:"gemini-1.5-flash"`
	GenerationTimeout time.Duration `env:"GENERATION_TIMEOUT" envDefault:"30s"`

	SampleCount   int    `env:"SAMPLE_COUNT" envDefault:"3"`
	SamplePolicy  string `env:"SAMPLE_POLICY" envDefault:"short-circuit"`
	SampleWorkers int    `env:"SAMPLE_WORKERS" envDefault:"1"`

	AdvisoryRulesFile string `env:"ADVISORY_RULES_FILE"`

	APIPort        string        `env:"API_PORT" envDefault:"8001"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"120s"`
	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from the environment, after loading envFile
// into it if one is given.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		log.Printf("loading env from file %s", envFile)
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("error loading .env file '%s': %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if budget := cfg.SamplingTimeout(); cfg.RequestTimeout < budget {
		log.Printf("warning: REQUEST_TIMEOUT %v is shorter than the %v a sampled interaction may take (SAMPLE_COUNT=%d, SAMPLE_WORKERS=%d, GENERATION_TIMEOUT=%v)",
			cfg.RequestTimeout, budget, cfg.SampleCount, cfg.SampleWorkers, cfg.GenerationTimeout)
	}

	return &cfg, nil
}

// SamplingTimeout is the longest a sampled interaction can take when every
// call runs until GENERATION_TIMEOUT.
func (cfg *Config) SamplingTimeout() time.Duration {
	workers := max(cfg.SampleWorkers, 1)
	rounds := (cfg.SampleCount + workers - 1) / workers
	return time.Duration(rounds) * cfg.GenerationTimeout
}

func (cfg *Config) validate() error {
	if cfg.SampleCount < 1 {
		return fmt.Errorf("SAMPLE_COUNT must be positive, got %d", cfg.SampleCount)
	}
	if _, err := sampler.ParsePolicy(cfg.SamplePolicy); err != nil {
		return fmt.Errorf("invalid SAMPLE_POLICY: %w", err)
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

func (cfg *Config) SamplerOptions() sampler.Options {
	policy, _ := sampler.ParsePolicy(cfg.SamplePolicy)
	return sampler.Options{
		Count:   cfg.SampleCount,
		Policy:  policy,
		Workers: cfg.SampleWorkers,
	}
}

// SetupLogging installs a text slog handler on stderr at the configured level.
func (cfg *Config) SetupLogging() {
	cfg.SetupLoggingTo(os.Stderr)
}

func (cfg *Config) SetupLoggingTo(w io.Writer) {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, fmt.Errorf("invalid LOG_LEVEL '%s': %w", s, err)
	}
	return level, nil
}
