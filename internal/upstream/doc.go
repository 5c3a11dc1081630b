// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

/*
Package upstream is the HTTP transport to the third-party leaderboard service.

It returns raw payload bytes; decoding and validation belong to the
validation package and caching to the cache package.

# Resilience

  - Token bucket limiter (golang.org/x/time/rate) in front of every request
  - heimdall HTTP client with the configured timeout and zero retries
  - Optional circuit breaker (sony/gobreaker) that opens at 60% failures
    over at least 10 requests; 404 responses do not count as failures

Failed requests are never retried synchronously. The caches above treat any
error as a transport failure and retry on their next natural refresh.

# Errors

  - ErrNotFound: the agent endpoint answered 404
  - *StatusError: any other non-200 response, with a body excerpt (64KB max)
  - gobreaker.ErrOpenState: the circuit is open
*/
package upstream
