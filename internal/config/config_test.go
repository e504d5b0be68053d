package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 10, cfg.HistoryWindow)
	assert.Equal(t, 64, cfg.WriteBuffer)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("SOLANCE_HTTP_ADDR", ":9999")
	t.Setenv("SOLANCE_ENV", "prod")
	t.Setenv("SOLANCE_DB_DRIVER", "postgres")
	t.Setenv("SOLANCE_DB_DSN", "postgres://db/solance")
	t.Setenv("SOLANCE_INTERNAL_API_KEY", "sekrit")
	t.Setenv("SOLANCE_HISTORY_WINDOW", "25")
	t.Setenv("SOLANCE_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := FromEnv()

	require.Equal(t, ":9999", cfg.HTTPAddr)
	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "postgres", cfg.DBDriver)
	require.Equal(t, "postgres://db/solance", cfg.DBDSN)
	require.Equal(t, "sekrit", cfg.APIKey)
	require.Equal(t, 25, cfg.HistoryWindow)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestFromEnvBadIntFallsBack(t *testing.T) {
	t.Setenv("SOLANCE_HISTORY_WINDOW", "not-a-number")
	t.Setenv("SOLANCE_WRITE_BUFFER", "-4")

	cfg := FromEnv()
	assert.Equal(t, 10, cfg.HistoryWindow)
	assert.Equal(t, 64, cfg.WriteBuffer)
}

func TestFromEnvLLMProvider(t *testing.T) {
	t.Setenv("SOLANCE_LLM_PROVIDER", "mock")
	cfg := FromEnv()
	assert.Equal(t, "mock", cfg.LLM.Provider)
	require.NoError(t, cfg.LLM.Validate())
}
