package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Logging settings. Logs go to stderr unless LogFile is set;
	// stdout belongs to the stdio transport.
	LogFile  string
	LogLevel string

	// Decoded-input cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheTTL           time.Duration
	CacheSweepInterval time.Duration

	// Session store settings.
	SessionCacheSize int

	// Input limits.
	MaxInputBytes int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SCHEMATOOLS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		LogFile:            os.Getenv("SCHEMATOOLS_LOG_FILE"),
		LogLevel:           envString("SCHEMATOOLS_LOG_LEVEL", "info"),
		CacheEnabled:       envBool("SCHEMATOOLS_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("SCHEMATOOLS_CACHE_MAX_SIZE", 32),
		CacheTTL:           envDuration("SCHEMATOOLS_CACHE_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("SCHEMATOOLS_CACHE_SWEEP_INTERVAL", 60*time.Second),
		SessionCacheSize:   envInt("SCHEMATOOLS_SESSION_CACHE_SIZE", 128),
		MaxInputBytes:      envInt64("SCHEMATOOLS_MAX_INPUT_BYTES", 10*1024*1024),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
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

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
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
