// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateUpstream(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateValidation(); err != nil {
		return err
	}

	if err := c.validateStats(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateRateLimits(); err != nil {
		return err
	}

	return c.validateLogging()
}

// UsernamePlaceholder is substituted in UpstreamConfig.AgentPath.
const UsernamePlaceholder = "{username}"

// validateUpstream validates the leaderboard service settings
func (c *Config) validateUpstream() error {
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if err := checkBaseURL(c.Upstream.BaseURL); err != nil {
		return fmt.Errorf("UPSTREAM_BASE_URL is invalid: %w", err)
	}
	if !strings.HasPrefix(c.Upstream.LeaderboardPath, "/") {
		return fmt.Errorf("UPSTREAM_LEADERBOARD_PATH must start with /")
	}
	if !strings.HasPrefix(c.Upstream.AgentPath, "/") {
		return fmt.Errorf("UPSTREAM_AGENT_PATH must start with /")
	}
	if !strings.Contains(c.Upstream.AgentPath, UsernamePlaceholder) {
		return fmt.Errorf("UPSTREAM_AGENT_PATH must contain %s", UsernamePlaceholder)
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.Upstream.RateLimit < 0 {
		return fmt.Errorf("UPSTREAM_RATE_LIMIT must not be negative")
	}
	if c.Upstream.RateLimit > 0 && c.Upstream.RateBurst < 1 {
		return fmt.Errorf("UPSTREAM_RATE_BURST must be at least 1 when rate limiting is enabled")
	}
	return nil
}

// checkBaseURL accepts an http(s) URL with a host and optional path prefix.
// Endpoint paths are appended, so a query or fragment would be misplaced.
func checkBaseURL(raw string) error {
	u, err := url.Parse(raw)
	switch {
	case err != nil:
		return err
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	case u.Host == "":
		return fmt.Errorf("host is required")
	case u.RawQuery != "":
		return fmt.Errorf("query parameters are not allowed (?%s)", u.RawQuery)
	case u.Fragment != "":
		return fmt.Errorf("fragment is not allowed")
	}
	return nil
}

// validateCache validates cache windows. The throttle window must be shorter
// than the TTL, and the TTL shorter than the force-refresh ceiling, otherwise
// the priority order of the roster cache collapses.
func (c *Config) validateCache() error {
	cc := c.Cache
	if cc.ThrottleWindow < 0 {
		return fmt.Errorf("CACHE_THROTTLE_WINDOW must not be negative")
	}
	if cc.RosterTTL <= cc.ThrottleWindow {
		return fmt.Errorf("CACHE_ROSTER_TTL (%v) must be greater than CACHE_THROTTLE_WINDOW (%v)", cc.RosterTTL, cc.ThrottleWindow)
	}
	if cc.ForceRefreshAfter < cc.RosterTTL {
		return fmt.Errorf("CACHE_FORCE_REFRESH_AFTER (%v) must not be less than CACHE_ROSTER_TTL (%v)", cc.ForceRefreshAfter, cc.RosterTTL)
	}
	if cc.DetailTTL <= 0 {
		return fmt.Errorf("CACHE_DETAIL_TTL must be positive")
	}
	if cc.DetailCapacity < 1 {
		return fmt.Errorf("CACHE_DETAIL_CAPACITY must be at least 1")
	}
	if cc.FailureThreshold < 1 {
		return fmt.Errorf("CACHE_FAILURE_THRESHOLD must be at least 1")
	}
	if cc.CityIndexMaxAge < time.Minute {
		return fmt.Errorf("CACHE_CITY_INDEX_MAX_AGE must be at least 1m")
	}
	if cc.StatsTTL < 0 {
		return fmt.Errorf("CACHE_STATS_TTL must not be negative")
	}
	return nil
}

// validValidationModes defines the allowed parser modes
var validValidationModes = map[string]bool{
	"strict":     true,
	"permissive": true,
}

func (c *Config) validateValidation() error {
	if !validValidationModes[strings.ToLower(c.Validation.Mode)] {
		return fmt.Errorf("VALIDATION_MODE must be one of: strict, permissive")
	}
	if c.Validation.MaxRecentPosts < 1 {
		return fmt.Errorf("VALIDATION_MAX_RECENT_POSTS must be at least 1")
	}
	return nil
}

func (c *Config) validateStats() error {
	if c.Stats.SampleSize < 1 {
		return fmt.Errorf("STATS_SAMPLE_SIZE must be at least 1")
	}
	if c.Stats.TopN < 1 {
		return fmt.Errorf("STATS_TOP_N must be at least 1")
	}
	if c.Stats.Concurrency < 1 {
		return fmt.Errorf("STATS_CONCURRENCY must be at least 1")
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

// validateAPI validates pagination bounds
func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must not be less than API_DEFAULT_PAGE_SIZE")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// HasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
