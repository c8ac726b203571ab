package llms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	ErrGenerationFailed = errors.New("generation failed")
	ErrNoContent        = errors.New("no content in response")
	ErrUnknownProvider  = errors.New("unknown llm provider")
)

const DefaultTimeout = 30 * time.Second

// LLM is a remote text generation capability. Implementations make exactly
// one request per call and do not retry.
type LLM interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

// AsGenerationError wraps err so that errors.Is(err, ErrGenerationFailed)
// holds, leaving already wrapped errors untouched.
func AsGenerationError(err error) error {
	if err == nil || errors.Is(err, ErrGenerationFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
}

// Client bounds every call to the backend with a timeout and normalizes the
// failures it returns.
type Client struct {
	backend  LLM
	provider string
	timeout  time.Duration
}

func NewClient(provider string, backend LLM, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{backend: backend, provider: provider, timeout: timeout}
}

func (c *Client) Generate(ctx context.Context, prompt, model string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.backend.Generate(ctx, prompt, model)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("request timed out after %v: %w", c.timeout, err)
		}
		slog.Error("llm generation failed", "provider", c.provider, "model", model, "error", err)
		return "", AsGenerationError(err)
	}

	slog.Debug("llm generation completed", "provider", c.provider, "model", model, "prompt_chars", len(prompt), "response_chars", len(text), "duration", time.Since(start))
	return text, nil
}

type Options struct {
	Provider string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderLangChain = "langchain"
	ProviderAnthropic = "anthropic"
)

// New constructs the backend named by opts.Provider and wraps it in a Client.
func New(ctx context.Context, opts Options) (*Client, error) {
	var (
		backend LLM
		err     error
	)

	switch opts.Provider {
	case ProviderGemini, "":
		backend, err = NewGemini(ctx, opts.APIKey, opts.BaseURL)
	case ProviderOpenAI:
		backend = NewOpenAI(opts.APIKey, opts.BaseURL)
	case ProviderLangChain:
		backend, err = NewLangChain(opts.APIKey, opts.BaseURL)
	case ProviderAnthropic:
		backend = NewAnthropic(opts.APIKey, opts.BaseURL)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownProvider, opts.Provider)
	}
	if err != nil {
		return nil, err
	}

	provider := opts.Provider
	if provider == "" {
		provider = ProviderGemini
	}
	return NewClient(provider, backend, opts.Timeout), nil
}
