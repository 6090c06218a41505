package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds the MCP server settings that are not part of the
// apidesc configuration file.
type serverConfig struct {
	// Workspace cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// LoadTimeout bounds a single package load.
	LoadTimeout time.Duration
}

// loadConfig reads configuration from APIDESC_MCP_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("APIDESC_MCP_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("APIDESC_MCP_CACHE_MAX_SIZE", 4),
		CacheTTL:           envDuration("APIDESC_MCP_CACHE_TTL", 30*time.Second),
		CacheSweepInterval: envDuration("APIDESC_MCP_CACHE_SWEEP_INTERVAL", 60*time.Second),
		LoadTimeout:        envDuration("APIDESC_MCP_LOAD_TIMEOUT", 2*time.Minute),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
