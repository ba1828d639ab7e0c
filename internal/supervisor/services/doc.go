// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

/*
Package services provides suture.Service wrappers for Garderobe components.

Each wrapper adapts a component's lifecycle to suture's context-aware
Serve pattern and identifies itself via fmt.Stringer for supervisor
log messages.

Available services:

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the blocking ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Cache Sweeper (SweeperService):
  - Periodically evicts expired entries from the TTL caches
  - Records per-cache eviction metrics on each pass
  - Complements the caches' lazy on-read expiry

Return values determine supervisor behavior: nil means the service
stopped cleanly and will not restart, an error means it crashed and
the supervisor will restart it, and ctx.Err() signals normal shutdown.
*/
package services
