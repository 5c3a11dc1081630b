// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Upstream.BaseURL = "https://leaderboard.example.com"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"base url with path prefix", func(c *Config) { c.Upstream.BaseURL = "https://x.example.com/api/v2" }, ""},
		{"missing base url", func(c *Config) { c.Upstream.BaseURL = "" }, "UPSTREAM_BASE_URL is required"},
		{"base url without host", func(c *Config) { c.Upstream.BaseURL = "https://" }, "host is required"},
		{"base url with query", func(c *Config) { c.Upstream.BaseURL = "https://x.example.com?a=b" }, "query parameters"},
		{"agent path without placeholder", func(c *Config) { c.Upstream.AgentPath = "/api/agents" }, "UPSTREAM_AGENT_PATH must contain"},
		{"relative leaderboard path", func(c *Config) { c.Upstream.LeaderboardPath = "api/leaderboard" }, "UPSTREAM_LEADERBOARD_PATH"},
		{"zero timeout", func(c *Config) { c.Upstream.Timeout = 0 }, "UPSTREAM_TIMEOUT"},
		{"negative rate", func(c *Config) { c.Upstream.RateLimit = -1 }, "UPSTREAM_RATE_LIMIT"},
		{"unlimited rate", func(c *Config) { c.Upstream.RateLimit = 0; c.Upstream.RateBurst = 0 }, ""},
		{"ttl not above throttle", func(c *Config) { c.Cache.RosterTTL = c.Cache.ThrottleWindow }, "CACHE_ROSTER_TTL"},
		{"ceiling below ttl", func(c *Config) { c.Cache.ForceRefreshAfter = time.Minute }, "CACHE_FORCE_REFRESH_AFTER"},
		{"zero detail capacity", func(c *Config) { c.Cache.DetailCapacity = 0 }, "CACHE_DETAIL_CAPACITY"},
		{"zero failure threshold", func(c *Config) { c.Cache.FailureThreshold = 0 }, "CACHE_FAILURE_THRESHOLD"},
		{"unknown validation mode", func(c *Config) { c.Validation.Mode = "lenient" }, "VALIDATION_MODE"},
		{"validation mode case-insensitive", func(c *Config) { c.Validation.Mode = "Permissive" }, ""},
		{"zero sample size", func(c *Config) { c.Stats.SampleSize = 0 }, "STATS_SAMPLE_SIZE"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"max page below default", func(c *Config) { c.API.MaxPageSize = 10 }, "API_MAX_PAGE_SIZE"},
		{"rate limit window too short", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"rate limit disabled skips checks", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestHasWildcardCORS(t *testing.T) {
	cfg := validConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("default CORS origins should be wildcard")
	}
	cfg.Security.CORSOrigins = []string{"https://a.example.com"}
	if cfg.HasWildcardCORS() {
		t.Error("explicit origins should not report wildcard")
	}
}

func TestServerConfig_Addr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
