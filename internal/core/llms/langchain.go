package llms

import (
	"context"
	"fmt"

	lcllms "github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

// LangChain generates through langchaingo's OpenAI compatible client, which
// also covers self-hosted OpenAI compatible endpoints via the base url.
type LangChain struct {
	llm *lcopenai.LLM
}

func NewLangChain(apiKey, baseURL string) (*LangChain, error) {
	opts := []lcopenai.Option{lcopenai.WithToken(apiKey)}
	if baseURL != "" {
		opts = append(opts, lcopenai.WithBaseURL(baseURL))
	}

	llm, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create langchain openai client: %w", err)
	}

	return &LangChain{llm: llm}, nil
}

func (l *LangChain) Generate(ctx context.Context, prompt, model string) (string, error) {
	messages := []lcllms.MessageContent{
		lcllms.TextParts(lcllms.ChatMessageTypeHuman, prompt),
	}

	resp, err := l.llm.GenerateContent(ctx, messages, lcllms.WithModel(model))
	if err != nil {
		return "", fmt.Errorf("langchain generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoContent
	}

	return resp.Choices[0].Content, nil
}
