package ratelimit

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Limits applied when neither the caller nor the environment chooses any.
const (
	defaultPerMinute = 120
	defaultBurst     = 20
	defaultCleanup   = 5 * time.Minute
)

// EndpointConfig is the limit for one route. Limit <= 0 means unlimited.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends in "/"
	Method string        // HTTP method
	Limit  int           // Requests allowed per Window
	Window time.Duration // Refill period for Limit
	Burst  int           // Bucket size; Limit when 0
}

// exemptRoutes are never limited.
var exemptRoutes = []EndpointConfig{
	{Path: "/health", Method: http.MethodGet},
}

// DefaultEndpointConfigs returns the per-route limits for the export API.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Each capture launches a headless browser
		{Path: "/v1/snapshots", Method: http.MethodPost, Limit: 10, Window: time.Hour, Burst: 2},

		{Path: "/v1/reports/", Method: http.MethodGet, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/v1/reports/", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/v1/candidates/", Method: http.MethodGet, Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// NewConfig returns an enabled configuration allowing perMinute requests with the
// given burst on routes that have no limit of their own.
func NewConfig(perMinute, burst int) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    perMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		CleanupInterval: defaultCleanup,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig returns the built-in limits with RATE_LIMIT_* overrides applied.
func LoadConfig() *Config {
	return ApplyEnv(NewConfig(defaultPerMinute, defaultBurst))
}

// ApplyEnv overrides cfg from RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT,
// RATE_LIMIT_DEFAULT_WINDOW, RATE_LIMIT_DEFAULT_BURST, RATE_LIMIT_CLEANUP_INTERVAL,
// RATE_LIMIT_WHITELIST and RATE_LIMIT_BLACKLIST. Unparseable values are ignored.
func ApplyEnv(cfg *Config) *Config {
	if v, ok := lookupEnv("RATE_LIMIT_ENABLED", strconv.ParseBool); ok {
		cfg.Enabled = v
	}
	if v, ok := lookupEnv("RATE_LIMIT_DEFAULT_LIMIT", strconv.Atoi); ok {
		cfg.DefaultLimit = v
	}
	if v, ok := lookupEnv("RATE_LIMIT_DEFAULT_WINDOW", time.ParseDuration); ok {
		cfg.DefaultWindow = v
	}
	if v, ok := lookupEnv("RATE_LIMIT_DEFAULT_BURST", strconv.Atoi); ok {
		cfg.DefaultBurst = v
	}
	if v, ok := lookupEnv("RATE_LIMIT_CLEANUP_INTERVAL", time.ParseDuration); ok {
		cfg.CleanupInterval = v
	}
	if v := os.Getenv("RATE_LIMIT_WHITELIST"); v != "" {
		cfg.Whitelist = parseIPList(v)
	}
	if v := os.Getenv("RATE_LIMIT_BLACKLIST"); v != "" {
		cfg.Blacklist = parseIPList(v)
	}
	return cfg
}

func lookupEnv[T any](key string, parse func(string) (T, error)) (T, bool) {
	var zero T
	raw := os.Getenv(key)
	if raw == "" {
		return zero, false
	}
	v, err := parse(raw)
	if err != nil {
		return zero, false
	}
	return v, true
}

// parseIPList parses a comma-separated list of client addresses.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}

// MatchEndpoint returns the configuration governing method and path, or nil when the
// default limit applies. Exempt routes match with a zero (unlimited) config. An exact
// path beats a prefix, and a longer prefix beats a shorter one.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	for _, r := range exemptRoutes {
		if r.Method == method && r.Path == path {
			return &EndpointConfig{Path: r.Path, Method: r.Method}
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if best == nil || len(c.Path) > len(best.Path) {
				best = c
			}
		}
	}
	return best
}
