// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

/*
Package middleware provides HTTP middleware for the API server.

Key Components:

  - RequestID: UUID request IDs echoed in X-Request-ID and propagated to logging
  - PrometheusMetrics: request count, latency and in-flight gauges labeled by route pattern
  - Compression: gzip for clients that send Accept-Encoding: gzip

All three use the plain http.HandlerFunc shape; the api package adapts them
to chi's func(http.Handler) http.Handler with a one-line wrapper:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

PrometheusMetrics must be mounted globally so the route pattern is resolved
by the time it records.
*/
package middleware
