// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Data Source:
//     - Upstream: Leaderboard service endpoints, credentials, timeouts and rate limit
//     - Validation: How strictly upstream payloads are parsed
//
//  2. Caching:
//     - Cache: Throttle window, TTLs, force-refresh ceiling, detail cache bound
//     - Stats: Sampling parameters for estimated totals
//
//  3. Serving:
//     - Server: HTTP server configuration (port, host, timeout)
//     - API: Pagination limits
//     - Security: CORS and request rate limiting
//
//  4. Runtime:
//     - Logging: Log levels and output formats
//     - Supervisor: Service restart policy
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	client := upstream.NewClient(&cfg.Upstream)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Upstream   UpstreamConfig   `koanf:"upstream"`
	Cache      CacheConfig      `koanf:"cache"`
	Validation ValidationConfig `koanf:"validation"`
	Stats      StatsConfig      `koanf:"stats"`
	Server     ServerConfig     `koanf:"server"`
	API        APIConfig        `koanf:"api"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// UpstreamConfig holds the leaderboard service connection settings.
//
// AgentPath must contain the "{username}" placeholder; the username is
// path-escaped before substitution.
//
// Environment Variables:
//   - UPSTREAM_BASE_URL: Base URL of the leaderboard service (required)
//   - UPSTREAM_LEADERBOARD_PATH: Roster endpoint path (default: /api/leaderboard)
//   - UPSTREAM_AGENT_PATH: Per-agent endpoint path (default: /api/agents/{username})
//   - UPSTREAM_LIST_FIELD: Object field holding the roster list (default: agents)
//   - UPSTREAM_API_KEY: Optional bearer token
//   - UPSTREAM_USER_AGENT: User-Agent header sent upstream
//   - UPSTREAM_TIMEOUT: Per-request timeout (default: 30s)
//   - UPSTREAM_RATE_LIMIT: Requests per second allowed upstream (default: 2, 0 = unlimited)
//   - UPSTREAM_RATE_BURST: Token bucket burst (default: 4)
//   - UPSTREAM_BREAKER_ENABLED: Wrap the client in a circuit breaker (default: true)
type UpstreamConfig struct {
	BaseURL         string        `koanf:"base_url"`
	LeaderboardPath string        `koanf:"leaderboard_path"`
	AgentPath       string        `koanf:"agent_path"`
	ListField       string        `koanf:"list_field"`
	APIKey          string        `koanf:"api_key"`
	UserAgent       string        `koanf:"user_agent"`
	Timeout         time.Duration `koanf:"timeout"`
	RateLimit       float64       `koanf:"rate_limit"`
	RateBurst       int           `koanf:"rate_burst"`
	BreakerEnabled  bool          `koanf:"breaker_enabled"`
}

// CacheConfig holds roster and detail cache settings.
//
// Environment Variables:
//   - CACHE_THROTTLE_WINDOW: Minimum spacing between roster fetch attempts (default: 5s)
//   - CACHE_ROSTER_TTL: Roster freshness window (default: 15m)
//   - CACHE_FORCE_REFRESH_AFTER: Age beyond which a stale roster forces a synchronous fetch (default: 3h)
//   - CACHE_DETAIL_TTL: Agent detail freshness window (default: 15m)
//   - CACHE_DETAIL_CAPACITY: Maximum number of cached agent details (default: 100)
//   - CACHE_FAILURE_THRESHOLD: Consecutive failures before logging escalates to error (default: 3)
//   - CACHE_CITY_INDEX_MAX_AGE: City index rebuild interval (default: 24h)
//   - CACHE_STATS_TTL: Memoization window for computed stats (default: 5m)
type CacheConfig struct {
	ThrottleWindow    time.Duration `koanf:"throttle_window"`
	RosterTTL         time.Duration `koanf:"roster_ttl"`
	ForceRefreshAfter time.Duration `koanf:"force_refresh_after"`
	DetailTTL         time.Duration `koanf:"detail_ttl"`
	DetailCapacity    int           `koanf:"detail_capacity"`
	FailureThreshold  int           `koanf:"failure_threshold"`
	CityIndexMaxAge   time.Duration `koanf:"city_index_max_age"`
	StatsTTL          time.Duration `koanf:"stats_ttl"`
}

// ValidationConfig selects how upstream payloads are parsed.
//
// Environment Variables:
//   - VALIDATION_MODE: strict or permissive (default: strict)
//   - VALIDATION_MAX_RECENT_POSTS: Bound on an agent's recent posts (default: 20)
type ValidationConfig struct {
	Mode           string `koanf:"mode"`
	MaxRecentPosts int    `koanf:"max_recent_posts"`
}

// StatsConfig holds statistics engine settings.
//
// Environment Variables:
//   - STATS_SAMPLE_SIZE: Agents sampled for estimated totals (default: 50)
//   - STATS_TOP_N: Size of top and bottom performer lists (default: 5)
//   - STATS_CONCURRENCY: Concurrent detail fetches while sampling (default: 8)
type StatsConfig struct {
	SampleSize  int `koanf:"sample_size"`
	TopN        int `koanf:"top_n"`
	Concurrency int `koanf:"concurrency"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// APIConfig holds API pagination and response settings
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds HTTP-edge protection settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// SupervisorConfig holds the restart policy of the service tree.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// Load reads configuration from, in increasing priority:
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
