package llms_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fundraise-backend/internal/core/llms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	calls int
	text  string
	err   error
	delay time.Duration
}

func (s *stubLLM) Generate(ctx context.Context, prompt, model string) (string, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.text, s.err
}

func TestClientReturnsTextVerbatim(t *testing.T) {
	stub := &stubLLM{text: "  Line one\n\n**bold**  "}
	client := llms.NewClient("stub", stub, time.Second)

	text, err := client.Generate(context.Background(), "prompt", "model")
	require.NoError(t, err)
	assert.Equal(t, "  Line one\n\n**bold**  ", text)
	assert.Equal(t, 1, stub.calls)
}

func TestClientWrapsFailures(t *testing.T) {
	stub := &stubLLM{err: errors.New("quota exceeded")}
	client := llms.NewClient("stub", stub, time.Second)

	_, err := client.Generate(context.Background(), "prompt", "model")
	require.Error(t, err)
	assert.ErrorIs(t, err, llms.ErrGenerationFailed)
	assert.Equal(t, "generation failed: quota exceeded", err.Error())
	assert.Equal(t, 1, stub.calls)
}

func TestClientTimeout(t *testing.T) {
	stub := &stubLLM{text: "late", delay: time.Second}
	client := llms.NewClient("stub", stub, 20*time.Millisecond)

	_, err := client.Generate(context.Background(), "prompt", "model")
	require.Error(t, err)
	assert.ErrorIs(t, err, llms.ErrGenerationFailed)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timed out")
}

func TestAsGenerationError(t *testing.T) {
	assert.NoError(t, llms.AsGenerationError(nil))

	wrapped := llms.AsGenerationError(errors.New("boom"))
	assert.ErrorIs(t, wrapped, llms.ErrGenerationFailed)
	assert.Equal(t, wrapped, llms.AsGenerationError(wrapped))
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := llms.New(context.Background(), llms.Options{Provider: "carrier-pigeon", APIKey: "key"})
	assert.ErrorIs(t, err, llms.ErrUnknownProvider)
}

const chatCompletionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "gpt-4o-mini",
	"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "We could offer you a discount."}}],
	"usage": {"prompt_tokens": 10, "completion_tokens": 7, "total_tokens": 17}
}`

func TestOpenAIBackend(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody))
	}))
	defer srv.Close()

	backend := llms.NewOpenAI("test-key", srv.URL+"/")
	text, err := backend.Generate(context.Background(), "Simulate a pitch", "gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, "We could offer you a discount.", text)
	assert.Equal(t, int32(1), hits.Load())
}

func TestOpenAIBackendDoesNotRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "quota exceeded", "type": "insufficient_quota"}}`))
	}))
	defer srv.Close()

	client := llms.NewClient(llms.ProviderOpenAI, llms.NewOpenAI("test-key", srv.URL+"/"), time.Second)
	_, err := client.Generate(context.Background(), "prompt", "gpt-4o-mini")
	require.Error(t, err)
	assert.ErrorIs(t, err, llms.ErrGenerationFailed)
	assert.Equal(t, int32(1), hits.Load())
}

func TestLangChainBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatCompletionBody))
	}))
	defer srv.Close()

	backend, err := llms.NewLangChain("test-key", srv.URL)
	require.NoError(t, err)

	text, err := backend.Generate(context.Background(), "Simulate a pitch", "gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, "We could offer you a discount.", text)
}

func TestAnthropicBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.NotEmpty(t, r.Header.Get("anthropic-version"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "claude-test", body["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "msg_1", "type": "message", "role": "assistant", "content": [{"type": "text", "text": "Our fees are lower."}], "stop_reason": "end_turn"}`))
	}))
	defer srv.Close()

	text, err := llms.NewAnthropic("test-key", srv.URL).Generate(context.Background(), "prompt", "claude-test")
	require.NoError(t, err)
	assert.Equal(t, "Our fees are lower.", text)
}

func TestAnthropicBackendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
		isEmpty bool
	}{
		{
			name:    "api error message",
			status:  http.StatusTooManyRequests,
			body:    `{"type": "error", "error": {"type": "rate_limit_error", "message": "quota exceeded"}}`,
			wantErr: "quota exceeded",
		},
		{
			name:    "empty content",
			status:  http.StatusOK,
			body:    `{"id": "msg_1", "type": "message", "role": "assistant", "content": []}`,
			isEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := llms.NewAnthropic("test-key", srv.URL).Generate(context.Background(), "prompt", "claude-test")
			require.Error(t, err)
			if tt.isEmpty {
				assert.ErrorIs(t, err, llms.ErrNoContent)
			} else {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestGeminiBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash:generateContent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"content": {"role": "model", "parts": [{"text": "Analysis: strong quartile."}]}, "finishReason": "STOP"}]}`))
	}))
	defer srv.Close()

	backend, err := llms.NewGemini(context.Background(), "test-key", srv.URL+"/")
	require.NoError(t, err)

	text, err := backend.Generate(context.Background(), "prompt", "gemini-1.5-flash")
	require.NoError(t, err)
	assert.Equal(t, "Analysis: strong quartile.", text)
}

func TestGeminiRequiresAPIKey(t *testing.T) {
	_, err := llms.NewGemini(context.Background(), "", "")
	assert.Error(t, err)
}
