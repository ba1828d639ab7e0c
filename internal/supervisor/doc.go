// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

/*
Package supervisor provides process supervision for Garderobe using suture v4.

This package implements a hierarchical supervisor tree that manages the
lifecycle of the long-running services in the application. It provides
Erlang/OTP-style supervision with automatic restart, failure isolation,
and graceful shutdown.

# Overview

The supervisor tree organizes services into two layers for failure isolation:

	RootSupervisor ("garderobe")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── SweeperService (periodic cache expiry)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

This hierarchy ensures that a crash in background housekeeping never
affects the API layer's ability to serve requests, and that each layer
can restart independently with its own failure counting.

# Usage Example

Basic setup in main.go:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewSweeperService(caches, cfg.Cache.SweepInterval, logging.Logger()))

	// Blocks until the context is canceled.
	if err := tree.Serve(ctx); err != nil {
	    return err
	}

# Failure Handling

The supervisor uses suture's failure counter with exponential decay:
each service failure increments the counter, the counter decays over
FailureDecay seconds, and once it exceeds FailureThreshold the
supervisor waits FailureBackoff before restarting. Defaults match
suture's production defaults (5 failures, 30s decay, 15s backoff,
10s shutdown timeout).

# Service Interface

All services implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return nil to stop cleanly without restart; return an error to be
restarted; return promptly when the context is canceled.

# Debugging Shutdown Issues

If services don't stop within the timeout, UnstoppedServiceReport
lists the hung services. Common causes are goroutines that ignore
context cancellation and blocked network I/O without deadlines.
*/
package supervisor
