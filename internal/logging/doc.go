// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

// Package logging provides centralized zerolog-based structured logging for Agentboard.
//
// A global logger is configured once at startup and used through package
// level helpers:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//	logging.Info().Int("agents", n).Msg("Roster refreshed")
//
// Request scoped entries carry the request and correlation IDs placed in the
// context by the HTTP middleware:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Upstream unavailable")
//
// Components keep a tagged child logger:
//
//	log := logging.WithComponent("agent_detail_cache")
//
// # Configuration
//
//	LOG_LEVEL   trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  json, console (default: json)
//	LOG_CALLER  include caller file:line (default: false)
//
// # slog
//
// SlogHandler adapts zerolog to log/slog so that the suture supervisor's
// sutureslog event hook writes to the same sink.
//
// Always terminate event chains with Msg or Send; an unterminated event is
// never written.
package logging
