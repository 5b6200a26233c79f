package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9000,
		"knowledge": {"key": "chunks.json"}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, "info", cfg.LogConfig.Level)
	require.Equal(t, "local", cfg.Knowledge.Store.Type)
	require.Equal(t, 1024, cfg.Knowledge.QueryCacheSize)
	require.Equal(t, 60, cfg.Knowledge.QueryCacheTTLMins)
	require.Equal(t, 60, cfg.RateLimit.WindowSeconds)
	require.Equal(t, 20, cfg.RateLimit.MaxRequests)
	require.Equal(t, 10, cfg.AI.TimeoutSeconds)
	require.Equal(t, 2, cfg.AI.MaxRetries)
	require.Equal(t, 6, cfg.AI.MaxHistory)
	require.Equal(t, 3, cfg.AI.TopK)
	require.Empty(t, cfg.Admin.PasswordHash)
}

func TestLoadFull(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"log_config": {"level": "debug", "console": true},
		"cors_allowlist": ["https://yash.dev"],
		"knowledge": {
			"store": {"type": "s3", "data": {"bucket": "kb"}},
			"key": "chunks.json"
		},
		"rate_limit": {"window_seconds": 30, "max_requests": 5},
		"ai": {
			"providers": [{"name": "gemini", "model": "gemini-2.0-flash", "data": {"api_key": "k"}}],
			"timeout_seconds": 5
		},
		"admin": {"password_hash": "$2a$10$abc", "jwt_secret": "s3cret"}
	}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "s3", cfg.Knowledge.Store.Type)
	require.Equal(t, 30, cfg.RateLimit.WindowSeconds)
	require.Equal(t, 5, cfg.RateLimit.MaxRequests)
	require.Len(t, cfg.AI.Providers, 1)
	require.Equal(t, "gemini", cfg.AI.Providers[0].Name)
	require.Equal(t, 5, cfg.AI.TimeoutSeconds)
	require.Equal(t, 24, cfg.Admin.TTLHours)
}

func TestLoadValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing port", `{"knowledge": {"key": "chunks.json"}}`},
		{"missing knowledge key", `{"port": 8080}`},
		{"admin without secret", `{"port": 8080, "knowledge": {"key": "k"}, "admin": {"password_hash": "$2a$10$abc"}}`},
		{"malformed json", `{"port": 8080,`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			require.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
	})
}
