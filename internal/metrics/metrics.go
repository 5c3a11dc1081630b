// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache type label values.
const (
	CacheRoster = "roster"
	CacheDetail = "agent_detail"
	CacheStats  = "stats"
)

// Roster fetch outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeEmpty   = "empty"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Upstream Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of requests sent to the leaderboard service",
		},
		[]string{"endpoint", "status_code"}, // endpoint: "leaderboard", "agent"; status_code "error" on transport failure
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of leaderboard service requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)

	UpstreamRateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "upstream_rate_limit_wait_seconds",
			Help:    "Time spent waiting for the upstream request limiter",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5},
		},
	)

	// Roster Cache Metrics
	RosterFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_fetches_total",
			Help: "Total number of roster fetch attempts by outcome",
		},
		[]string{"mode", "outcome"}, // mode: "sync", "background"
	)

	RosterServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roster_served_total",
			Help: "Total number of roster reads by the cache path that served them",
		},
		[]string{"path"}, // "throttled", "fresh", "in_flight", "stale", "fetched", "fallback"
	)

	RosterAgents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roster_agents",
			Help: "Number of agents in the current roster snapshot",
		},
	)

	RosterLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roster_last_success_timestamp",
			Help: "Unix timestamp of the last successful roster fetch",
		},
	)

	RosterConsecutiveFailures = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roster_consecutive_failures",
			Help: "Current number of consecutive failed roster fetches",
		},
	)

	RosterDroppedElements = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roster_dropped_elements_total",
			Help: "Total number of upstream roster elements dropped by validation",
		},
	)

	CityIndexRebuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "city_index_rebuilds_total",
			Help: "Total number of city index rebuilds",
		},
	)

	// Cache Metrics (General)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "roster", "agent_detail", "stats"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Stats Metrics
	StatsComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stats_compute_duration_seconds",
			Help:    "Duration of roster statistics computation, including detail sampling",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)

	StatsSampleFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stats_sample_failures_total",
			Help: "Total number of sampled detail fetches that failed during stats computation",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records one request to the leaderboard service.
// statusCode is "error" when no response was received.
func RecordUpstreamRequest(endpoint, statusCode string, duration time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(endpoint, statusCode).Inc()
	UpstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordRosterFetch records a roster fetch attempt with one of the Outcome
// values. On success the snapshot size and last success timestamp are updated.
func RecordRosterFetch(background bool, outcome string, agents int) {
	mode := "sync"
	if background {
		mode = "background"
	}

	RosterFetchesTotal.WithLabelValues(mode, outcome).Inc()
	if outcome == OutcomeSuccess {
		RosterAgents.Set(float64(agents))
		RosterLastSuccess.Set(float64(time.Now().Unix()))
	}
}

// RecordRosterServed records which cache path answered a roster read.
func RecordRosterServed(path string) {
	RosterServedTotal.WithLabelValues(path).Inc()
}

// RecordCacheLookup records a hit or miss for a cache type.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
	} else {
		CacheMisses.WithLabelValues(cacheType).Inc()
	}
}
