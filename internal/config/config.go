// Package config loads service configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/nileshk/solance/internal/llm"
)

type Config struct {
	HTTPAddr string
	Env      string // "dev" or "prod"; controls logger output

	DBDriver string // sqlite|postgres
	DBDSN    string

	// APIKey guards the /api/v1 surface. Requests must send it in the
	// X-API-Key header. Empty means the guard rejects everything —
	// fail safe, never fail open.
	APIKey string

	CORSOrigins []string

	// HistoryWindow is the max number of past interaction records the
	// difficulty policy looks at.
	HistoryWindow int

	// WriteBuffer is the queue depth of the background history writer.
	WriteBuffer int

	LLM llm.Config
}

func FromEnv() Config {
	return Config{
		HTTPAddr:      envOr("SOLANCE_HTTP_ADDR", ":8080"),
		Env:           envOr("SOLANCE_ENV", "dev"),
		DBDriver:      envOr("SOLANCE_DB_DRIVER", "sqlite"),
		DBDSN:         os.Getenv("SOLANCE_DB_DSN"),
		APIKey:        os.Getenv("SOLANCE_INTERNAL_API_KEY"),
		CORSOrigins:   csvOr("SOLANCE_CORS_ORIGINS", "http://localhost:3000"),
		HistoryWindow: envInt("SOLANCE_HISTORY_WINDOW", 10),
		WriteBuffer:   envInt("SOLANCE_WRITE_BUFFER", 64),
		LLM:           llm.ConfigFromEnv(),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
