package llms

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAI struct {
	client openai.Client
}

func NewOpenAI(apiKey, baseURL string) *OpenAI {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAI{client: openai.NewClient(opts...)}
}

func (o *OpenAI) Generate(ctx context.Context, prompt, model string) (string, error) {
	chatOpts := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Model:    model,
	}

	res, err := o.client.Chat.Completions.New(ctx, chatOpts)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(res.Choices) == 0 {
		return "", ErrNoContent
	}

	return res.Choices[0].Message.Content, nil
}
