package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 0\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.Generation.Provider)
	assert.Equal(t, "gemini-3-flash-preview", cfg.Generation.Gemini.Model)
	assert.Equal(t, "https://generativelanguage.googleapis.com", cfg.Generation.Gemini.BaseURL)
	assert.Equal(t, "postgres", cfg.AdsData.Backend)
	assert.Equal(t, "last 30 days", cfg.Agent.DefaultTimeRange)
	assert.Equal(t, 3, cfg.Agent.HistoryMessageLimit)
	assert.Equal(t, 100, cfg.Agent.HistoryCharLimit)
	assert.Contains(t, cfg.Agent.ExplainTriggerWords, "tại sao")
	assert.Contains(t, cfg.Agent.TimeSeriesMarkers, "biểu đồ")
	assert.Contains(t, cfg.Agent.CampaignWords, "chiến dịch")
}

func TestLoad_ExplicitValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  host: 127.0.0.1
generation:
  provider: bedrock
  bedrock:
    model_id: anthropic.claude-3-haiku-20240307-v1:0
    region: eu-west-1
agent:
  language: en
  explain_trigger_words: ["why", "explain"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "bedrock", cfg.Generation.Provider)
	assert.Equal(t, "anthropic.claude-3-haiku-20240307-v1:0", cfg.Generation.Bedrock.ModelID)
	assert.Equal(t, "eu-west-1", cfg.Generation.Bedrock.Region)
	assert.Equal(t, "en", cfg.Agent.Language)
	assert.Equal(t, []string{"why", "explain"}, cfg.Agent.ExplainTriggerWords)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8000\n")

	t.Setenv("GOOGLE_API_KEY", "test-key-123")
	t.Setenv("DATABASE_URL", "postgres://copilot:pw@localhost/ads")
	t.Setenv("REDIS_ADDR", "localhost:6380")

	cfg, err := LoadFromEnv(path)
	require.NoError(t, err)

	assert.Equal(t, "test-key-123", cfg.Generation.Gemini.APIKey)
	assert.Equal(t, "postgres://copilot:pw@localhost/ads", cfg.AdsData.DatabaseURL)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
