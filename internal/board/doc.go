// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

// Package board wires the upstream client, caches, query and stats engines
// into a single Service. It is the library surface the HTTP layer consumes.
package board
