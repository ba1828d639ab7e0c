// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/garderobe-app/garderobe/internal/cache"
	"github.com/garderobe-app/garderobe/internal/metrics"
)

// SweeperService periodically removes expired entries from the caches it
// supervises. Expiry in the cache layer is otherwise lazy (checked on
// read), so without a sweeper an idle cache would hold dead entries
// until the next lookup touches them.
//
// One sweeper handles all caches; each tick sweeps every registered
// cache and records eviction metrics per cache name.
type SweeperService struct {
	caches   map[string]*cache.Cache
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewSweeperService creates a sweeper over the named caches. An interval
// of zero or less falls back to five minutes.
func NewSweeperService(caches map[string]*cache.Cache, interval time.Duration, logger zerolog.Logger) *SweeperService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SweeperService{
		caches:   caches,
		interval: interval,
		logger:   logger.With().Str("component", "cache-sweeper").Logger(),
		name:     "cache-sweeper",
	}
}

// Serve implements suture.Service. It sweeps on a fixed ticker until the
// context is canceled, which is the normal shutdown path.
func (s *SweeperService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", s.interval).
		Int("caches", len(s.caches)).
		Msg("cache sweeper started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweepAll()
		}
	}
}

func (s *SweeperService) sweepAll() {
	for name, c := range s.caches {
		evicted := c.SweepExpired()
		remaining := c.Len()
		metrics.RecordSweep(name, evicted, remaining)
		if evicted > 0 {
			s.logger.Debug().
				Str("cache", name).
				Int("evicted", evicted).
				Int("remaining", remaining).
				Msg("swept expired entries")
		}
	}
}

// String implements fmt.Stringer for logging.
func (s *SweeperService) String() string {
	return s.name
}
