// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

/*
Package main is the entry point for the Agentboard server.

Agentboard mirrors a remote agent leaderboard. It caches the roster and
per-agent profiles, serves filtered and paginated queries over them, and
computes aggregate statistics, shielding the upstream service from read
traffic.

# Startup

 1. Configuration: Koanf v2 layering defaults, config.yaml, and environment
 2. Logging: zerolog configured from LOG_LEVEL / LOG_FORMAT / LOG_CALLER
 3. Board service: upstream client, roster and detail caches, stats engine
 4. HTTP router: chi with request IDs, metrics, CORS, rate limiting
 5. Supervisor tree: roster warmup, uptime gauge, HTTP server

# Configuration

The only required setting is the upstream base URL:

	export UPSTREAM_BASE_URL=https://leaderboard.example.com
	./agentboard

Commonly tuned settings:

	CACHE_ROSTER_TTL=15m          roster freshness window
	CACHE_THROTTLE_WINDOW=5s      minimum gap between roster fetches
	VALIDATION_MODE=strict        strict or permissive payload validation
	HTTP_PORT=3857                listen port
	RATE_LIMIT_REQUESTS=100       per-IP requests per RATE_LIMIT_WINDOW

# Signal Handling

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains
in-flight requests for up to SUPERVISOR_SHUTDOWN_TIMEOUT, after which
background roster refreshes are stopped.
*/
package main
