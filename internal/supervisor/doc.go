// Agentboard - Leaderboard Mirror and Agent Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agentboard

/*
Package supervisor provides process supervision for Agentboard using suture v4.

Long-running services are organized into a two-layer tree:

	RootSupervisor ("agentboard")
	├── CacheSupervisor ("cache-layer")
	│   ├── RosterWarmupService
	│   └── UptimeService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's failure decay and backoff.
A failure in the cache layer never restarts the HTTP server.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(),
	    supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
	    return err
	}
	tree.AddCacheService(services.NewRosterWarmupService(board, services.WarmupConfig{}))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Supervisor.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Supervisor events (start, failure, backoff, stop timeout) are logged through
sutureslog, which writes to zerolog via logging.SlogHandler.
*/
package supervisor
