package llms

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	anthropicBaseURL   = "https://api.anthropic.com"
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 4096
)

type Anthropic struct {
	client *resty.Client
	apiKey string
}

func NewAnthropic(apiKey, baseURL string) *Anthropic {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &Anthropic{
		client: resty.New().SetBaseURL(baseURL),
		apiKey: apiKey,
	}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	Messages  []anthropicMessage `json:"messages"`
	MaxTokens int                `json:"max_tokens"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

type anthropicError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *Anthropic) Generate(ctx context.Context, prompt, model string) (string, error) {
	var (
		result   anthropicResponse
		apiError anthropicError
	)

	res, err := a.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", a.apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetBody(anthropicRequest{
			Model:     model,
			Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
			MaxTokens: anthropicMaxTokens,
		}).
		SetResult(&result).
		SetError(&apiError).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("anthropic request failed: %w", err)
	}

	if res.IsError() {
		if apiError.Error.Message != "" {
			return "", fmt.Errorf("anthropic api error (status %d): %s", res.StatusCode(), apiError.Error.Message)
		}
		return "", fmt.Errorf("anthropic api error (status %d): %s", res.StatusCode(), res.String())
	}

	for _, block := range result.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", ErrNoContent
}
