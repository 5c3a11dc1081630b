// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry at package init
through promauto and exposed at /metrics in Prometheus text format:

	curl http://localhost:3857/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rejected requests (counter)

Upstream Metrics:
  - upstream_requests_total: Requests to the leaderboard service (counter)
    Labels: endpoint (leaderboard, agent), status_code
  - upstream_request_duration_seconds: Upstream latency (histogram)
  - upstream_rate_limit_wait_seconds: Time blocked on the outbound limiter

Roster Cache Metrics:
  - roster_fetches_total: Fetch attempts (counter)
    Labels: mode (sync, background), outcome (success, failure, empty)
  - roster_served_total: Reads by serving path (counter)
  - roster_agents: Agents in the current snapshot (gauge)
  - roster_last_success_timestamp: Unix time of last good fetch (gauge)
  - roster_consecutive_failures: Failure streak (gauge)
  - roster_dropped_elements_total: Elements dropped by validation (counter)
  - city_index_rebuilds_total: City index rebuilds (counter)

Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_entries, cache_evictions_total
    Labels: cache_type (roster, agent_detail, stats)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open
  - circuit_breaker_requests_total: Labels name, result
  - circuit_breaker_consecutive_failures
  - circuit_breaker_state_transitions_total

Stats Metrics:
  - stats_compute_duration_seconds
  - stats_sample_failures_total

# Usage

	start := time.Now()
	body, err := client.FetchLeaderboard(ctx)
	metrics.RecordUpstreamRequest("leaderboard", "200", time.Since(start))

# Thread Safety

All recording functions are safe for concurrent use.
*/
package metrics
