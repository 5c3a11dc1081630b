// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

/*
Package api provides the HTTP layer over the mirrored leaderboard.

The package is a thin consumer of board.Service: it parses and validates
query parameters, calls the service and writes the standard envelope. All
caching, fetch orchestration and degradation happen below it.

Endpoints:

	GET /api/v1/agents              list, filter, sort and paginate the roster
	GET /api/v1/agents/{username}   enriched agent record
	GET /api/v1/stats               aggregate statistics
	GET /api/v1/cities              sorted location tags
	GET /api/v1/health/live         liveness probe
	GET /api/v1/health/ready        readiness probe (503 until a roster is cached)
	GET /metrics                    Prometheus metrics

Response Format:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 1, "captured_at": "..."}
	}

captured_at is the fetch time of the roster snapshot behind the response.

Error Mapping:

  - Invalid query parameters: 400 VALIDATION_ERROR
  - Unknown agent: 404 NOT_FOUND
  - Rate limited: 429 RATE_LIMIT_EXCEEDED
  - Detail fetch failed with nothing cached: 502 UPSTREAM_ERROR
  - Upstream timed out with nothing cached: 504 UPSTREAM_TIMEOUT
  - No roster was ever cached: 503 UPSTREAM_UNAVAILABLE

Middleware Stack:

Request ID, real IP, panic recovery, Prometheus metrics and CORS apply to all
routes. Security headers apply under /api/v1. Rate limiting (go-chi/httprate)
and gzip compression apply to data endpoints but not to health probes.
*/
package api
