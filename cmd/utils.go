package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"fundraise-backend/internal/chat"
	"fundraise-backend/internal/config"
	"fundraise-backend/internal/core/advisory"
	"fundraise-backend/internal/core/llms"
)

// LoadConfig parses the -env flag and loads the configuration, exiting on
// failure.
func LoadConfig() *config.Config {
	var configPath string

	flag.StringVar(&configPath, "env", "", "path to load env from")
	flag.Parse()

	if configPath == "" {
		log.Printf("no env file specified, using os.Environ only")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}
	cfg.SetupLogging()

	return cfg
}

// NewAssistant wires the generation client, the advisory rule book and the
// sampling options from cfg. onGeneration may be nil.
func NewAssistant(ctx context.Context, cfg *config.Config, onGeneration func()) (*chat.Assistant, advisory.RuleBook, error) {
	client, err := llms.New(ctx, llms.Options{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		BaseURL:  cfg.LLMBaseURL,
		Timeout:  cfg.GenerationTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("error creating llm client: %w", err)
	}

	rules, err := advisory.LoadRuleBook(cfg.AdvisoryRulesFile)
	if err != nil {
		return nil, nil, err
	}

	opts := cfg.SamplerOptions()
	opts.OnGeneration = onGeneration

	slog.Info("assistant configured", "provider", cfg.LLMProvider, "model", cfg.ModelID, "sample_count", opts.Count, "sample_policy", opts.Policy, "sample_workers", opts.Workers)

	return chat.NewAssistant(client, cfg.ModelID, rules, chat.WithSampling(opts)), rules, nil
}
