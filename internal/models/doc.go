// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

/*
Package models defines data structures shared across Agentboard.

It is the single source of truth for the shapes that flow between the
upstream parser, the caches, the query and statistics engines and the
HTTP layer.

Key Components:

  - Agent: A leaderboard participant. Roster entries and enriched profiles
    share this type; Enriched and Detail tell them apart.
  - Post: One item of an enriched agent's recent activity.
  - Filter / Page / SortKey: Roster query input and output.
  - Stats: Aggregate metrics over a roster snapshot.
  - APIResponse / Metadata / APIError: The HTTP response envelope.

Optional counters (followers, likes, reposts, replies) are *int64. A nil
counter means the upstream did not provide it, which is different from a
reported zero. Use Count to read them with absent treated as zero.

Thread Safety:

Model values carry no synchronization. Caches hand out copies (see
Agent.Clone) so callers may freely modify what they receive.
*/
package models
