package config_test

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fundraise-backend/internal/config"
	"fundraise-backend/internal/core/sampler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "secret")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.LLMProvider)
	assert.Equal(t, "gemini-1.5-flash", cfg.ModelID)
	assert.Equal(t, 30*time.Second, cfg.GenerationTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, sampler.Options{Count: 3, Policy: sampler.ShortCircuit, Workers: 1}, cfg.SamplerOptions())
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")

	_, err := config.Load("")
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	os.Unsetenv("LLM_API_KEY")
	os.Unsetenv("SAMPLE_POLICY")
	os.Unsetenv("GENERATION_TIMEOUT")
	t.Cleanup(func() {
		os.Unsetenv("SAMPLE_POLICY")
		os.Unsetenv("GENERATION_TIMEOUT")
	})

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LLM_API_KEY=from-file\nSAMPLE_POLICY=collect-successes\nGENERATION_TIMEOUT=10s\n"), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.LLMAPIKey)
	assert.Equal(t, sampler.CollectSuccesses, cfg.SamplerOptions().Policy)
	assert.Equal(t, 10*time.Second, cfg.GenerationTimeout)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "sample count", key: "SAMPLE_COUNT", val: "0"},
		{name: "sample policy", key: "SAMPLE_POLICY", val: "majority-vote"},
		{name: "log level", key: "LOG_LEVEL", val: "chatty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LLM_API_KEY", "secret")
			t.Setenv(tt.key, tt.val)

			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}

func TestSamplingTimeout(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		workers int
		want    time.Duration
	}{
		{name: "sequential", count: 3, workers: 1, want: 90 * time.Second},
		{name: "unset workers", count: 5, workers: 0, want: 150 * time.Second},
		{name: "parallel", count: 3, workers: 3, want: 30 * time.Second},
		{name: "partial rounds", count: 5, workers: 2, want: 90 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{SampleCount: tt.count, SampleWorkers: tt.workers, GenerationTimeout: 30 * time.Second}
			assert.Equal(t, tt.want, cfg.SamplingTimeout())
		})
	}
}

func TestLoadWarnsOnShortRequestTimeout(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("SAMPLE_COUNT", "5")

	_, err := config.Load("")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "REQUEST_TIMEOUT")

	buf.Reset()
	t.Setenv("SAMPLE_COUNT", "3")

	_, err = config.Load("")
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "REQUEST_TIMEOUT")
}
