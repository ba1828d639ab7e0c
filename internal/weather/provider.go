// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package weather

import (
	"context"
	"errors"

	"github.com/garderobe-app/garderobe/internal/models"
)

// ErrWeatherUnavailable indicates the weather provider failed or timed
// out. Recoverable: callers may retry or present stale-free degraded
// output. Cache misses are never reported through this error.
var ErrWeatherUnavailable = errors.New("weather provider unavailable")

// Provider fetches weather readings from an upstream source.
type Provider interface {
	// Current returns the present conditions at the coordinates.
	Current(ctx context.Context, lat, lon float64) (models.WeatherReading, error)

	// Forecast returns one reading per day for up to days days.
	Forecast(ctx context.Context, lat, lon float64, days int) ([]models.WeatherReading, error)
}
