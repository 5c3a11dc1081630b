// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

// Package services provides suture.Service wrappers for Agentboard components.
//
//   - HTTPServerService runs an *http.Server with graceful shutdown.
//   - RosterWarmupService performs the first roster fetch with exponential
//     backoff and retires itself on success.
//   - UptimeService refreshes the app_uptime_seconds gauge.
//
// Every wrapper implements fmt.Stringer so suture log events name it.
package services
