// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

/*
Package config provides centralized configuration management for Agentboard.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file: CONFIG_PATH, else config.yaml / config.yml in the
    working directory, else /etc/agentboard/config.yaml
 3. Environment variables, mapped explicitly (see envMappings). Unmapped
    variables are ignored.

# Sections

  - upstream: leaderboard service base URL, endpoint paths, list field, API key,
    timeout, request rate limit and circuit breaker toggle
  - cache: throttle window, roster TTL, force-refresh ceiling, detail TTL and
    capacity, failure escalation threshold, city index age, stats memo TTL
  - validation: strict or permissive payload parsing
  - stats: sample size, top/bottom N, sampling concurrency
  - server, api, security: HTTP listener, pagination bounds, CORS and rate limiting
  - logging: zerolog level, format, caller
  - supervisor: suture restart policy

Example YAML:

	upstream:
	  base_url: https://leaderboard.example.com
	  api_key: ${set via UPSTREAM_API_KEY}
	cache:
	  roster_ttl: 15m
	  force_refresh_after: 3h
	validation:
	  mode: permissive

# Validation

Load validates every section and returns the first problem found, naming the
environment variable that controls the offending setting.
*/
package config
