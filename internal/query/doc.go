// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

// Package query filters, sorts and paginates a roster snapshot.
//
// Run is a pure function over its inputs: the same roster and filter always
// produce the same page, and the roster is never modified.
package query
