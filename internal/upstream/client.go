// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
	"golang.org/x/time/rate"

	"github.com/tomtom215/agentboard/internal/config"
	"github.com/tomtom215/agentboard/internal/metrics"
)

// Endpoint label values used in metrics and errors.
const (
	EndpointLeaderboard = "leaderboard"
	EndpointAgent       = "agent"
)

// maxErrorBodySize limits the amount of response body read for error reporting
const maxErrorBodySize = 64 * 1024 // 64KB

// maxResponseSize bounds successful response bodies
const maxResponseSize = 32 * 1024 * 1024 // 32MB

// readBodyForError reads the response body for error reporting (max 64KB).
// Uses io.LimitReader to prevent unbounded memory allocation.
func readBodyForError(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}
	if len(body) == maxErrorBodySize {
		return string(body) + "\n... (truncated)"
	}
	return string(body)
}

// Fetcher retrieves raw leaderboard payloads. Both Client and
// CircuitBreakerClient implement it.
type Fetcher interface {
	FetchLeaderboard(ctx context.Context) ([]byte, error)
	FetchAgent(ctx context.Context, username string) ([]byte, error)
}

// Client handles communication with the leaderboard service.
//
// Requests go through a token bucket limiter and a heimdall HTTP client
// configured with the request timeout and no retries. Failed requests are
// never retried here; the caches retry on their next natural refresh.
//
// Thread Safety: Safe for concurrent use.
type Client struct {
	baseURL         string
	leaderboardPath string
	agentPath       string
	apiKey          string
	userAgent       string
	doer            heimdall.Doer
	limiter         *rate.Limiter
}

// NewClient creates a leaderboard client from the upstream configuration.
// A RateLimit of 0 disables outbound throttling.
func NewClient(cfg *config.UpstreamConfig) *Client {
	limit := rate.Inf
	burst := cfg.RateBurst
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		leaderboardPath: cfg.LeaderboardPath,
		agentPath:       cfg.AgentPath,
		apiKey:          cfg.APIKey,
		userAgent:       cfg.UserAgent,
		doer: httpclient.NewClient(
			httpclient.WithHTTPTimeout(cfg.Timeout),
			httpclient.WithRetryCount(0),
		),
		limiter: rate.NewLimiter(limit, burst),
	}
}

// FetchLeaderboard retrieves the raw roster payload.
func (c *Client) FetchLeaderboard(ctx context.Context) ([]byte, error) {
	return c.get(ctx, EndpointLeaderboard, c.baseURL+c.leaderboardPath)
}

// FetchAgent retrieves the raw detail payload for one agent. The username is
// path-escaped into the configured agent path. Returns ErrNotFound on 404.
func (c *Client) FetchAgent(ctx context.Context, username string) ([]byte, error) {
	path := strings.ReplaceAll(c.agentPath, config.UsernamePlaceholder, url.PathEscape(username))
	return c.get(ctx, EndpointAgent, c.baseURL+path)
}

// get performs one rate-limited GET and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, endpoint, reqURL string) ([]byte, error) {
	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("upstream %s rate limiter: %w", endpoint, err)
	}
	metrics.UpstreamRateLimitWait.Observe(time.Since(waitStart).Seconds())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(endpoint, "error", time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("upstream %s request failed: %w", endpoint, ctxErr)
		}
		return nil, fmt.Errorf("upstream %s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()
	metrics.RecordUpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound && endpoint == EndpointAgent:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, &StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       readBodyForError(resp.Body),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}
	return body, nil
}

// New returns the configured Fetcher: the plain client, wrapped in a circuit
// breaker when upstream.breaker_enabled is set.
func New(cfg *config.UpstreamConfig) Fetcher {
	if cfg.BreakerEnabled {
		return NewCircuitBreakerClient(cfg)
	}
	return NewClient(cfg)
}
