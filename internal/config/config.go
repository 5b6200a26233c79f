package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port          int              `json:"port"`
	LogConfig     logger.LogConfig `json:"log_config"`
	CORSAllowlist []string         `json:"cors_allowlist"`
	Knowledge     KnowledgeConfig  `json:"knowledge"`
	RateLimit     RateLimitConfig  `json:"rate_limit"`
	AI            AIConfig         `json:"ai"`
	Admin         AdminConfig      `json:"admin"`
}

type KnowledgeConfig struct {
	Store             StoreConfig `json:"store"`
	Key               string      `json:"key"`
	QueryCacheSize    int         `json:"query_cache_size"`
	QueryCacheTTLMins int         `json:"query_cache_ttl_mins"`
}

type StoreConfig struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type RateLimitConfig struct {
	WindowSeconds int `json:"window_seconds"`
	MaxRequests   int `json:"max_requests"`
}

// ProviderConfig configures one generation delegate. Providers are tried
// in declaration order; the first that answers wins.
type ProviderConfig struct {
	Name  string      `json:"name"`
	Model string      `json:"model"`
	Data  interface{} `json:"data"`
}

type AIConfig struct {
	Providers      []ProviderConfig `json:"providers"`
	TimeoutSeconds int              `json:"timeout_seconds"`
	MaxRetries     int              `json:"max_retries"`
	MaxHistory     int              `json:"max_history"`
	TopK           int              `json:"top_k"`
}

// AdminConfig guards the reload/stats surface. Leaving password_hash
// empty disables the admin routes entirely.
type AdminConfig struct {
	PasswordHash string `json:"password_hash"`
	JWTSecret    string `json:"jwt_secret"`
	TTLHours     int    `json:"ttl_hours"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Knowledge.Store.Type == "" {
		cfg.Knowledge.Store.Type = "local"
	}
	if cfg.Knowledge.Key == "" {
		return nil, fmt.Errorf("knowledge.key is required")
	}
	if cfg.Knowledge.QueryCacheSize == 0 {
		cfg.Knowledge.QueryCacheSize = 1024
	}
	if cfg.Knowledge.QueryCacheTTLMins == 0 {
		cfg.Knowledge.QueryCacheTTLMins = 60
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	if cfg.RateLimit.MaxRequests == 0 {
		cfg.RateLimit.MaxRequests = 20
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 10
	}
	if cfg.AI.MaxRetries == 0 {
		cfg.AI.MaxRetries = 2
	}
	if cfg.AI.MaxHistory == 0 {
		cfg.AI.MaxHistory = 6
	}
	if cfg.AI.TopK == 0 {
		cfg.AI.TopK = 3
	}
	if cfg.Admin.PasswordHash != "" {
		if cfg.Admin.JWTSecret == "" {
			return nil, fmt.Errorf("admin.jwt_secret is required when admin is enabled")
		}
		if cfg.Admin.TTLHours == 0 {
			cfg.Admin.TTLHours = 24
		}
	}
	return &cfg, nil
}
