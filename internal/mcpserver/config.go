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
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Listing defaults.
	IssueLimit int
	FileLimit  int
	MaxLimit   int

	// Input limits.
	MaxInlineSize int64

	// AllowPrivateIPs disables the SSRF guard on URL inputs and project
	// version pages.
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SDKGEN_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("SDKGEN_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("SDKGEN_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("SDKGEN_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("SDKGEN_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("SDKGEN_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("SDKGEN_CACHE_SWEEP_INTERVAL", 60*time.Second),
		IssueLimit:         envInt("SDKGEN_ISSUE_LIMIT", 100),
		FileLimit:          envInt("SDKGEN_FILE_LIMIT", 200),
		MaxLimit:           envInt("SDKGEN_MAX_LIMIT", 1000),
		MaxInlineSize:      envInt64("SDKGEN_MAX_INLINE_SIZE", 10*1024*1024),
		AllowPrivateIPs:    envBool("SDKGEN_ALLOW_PRIVATE_IPS", false),
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
