// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

/*
Package stats computes aggregate metrics over a roster snapshot.

Totals for likes and followers are exact only when the roster carries every
count. Otherwise they are estimates: the average over a sample of enriched
records (the first 50 agents by rank, fetched eight at a time) multiplied by
the roster size. The Estimated and SampleSize fields say which one a caller got.
*/
package stats
