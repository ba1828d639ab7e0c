// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package weather

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/garderobe-app/garderobe/internal/cache"
	"github.com/garderobe-app/garderobe/internal/models"
)

// Service answers weather requests through two independently configured
// TTL caches: a short one for live conditions and a longer one for
// multi-day forecasts. Each report carries the advisory derived from its
// reading. Safe for concurrent use.
type Service struct {
	provider      Provider
	currentCache  *cache.Cache
	forecastCache *cache.Cache
	logger        zerolog.Logger
}

// NewService creates a weather service. The caches are shared with the
// operational cache-management endpoints.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(provider Provider, currentCache, forecastCache *cache.Cache, logger zerolog.Logger) *Service {
	return &Service{
		provider:      provider,
		currentCache:  currentCache,
		forecastCache: forecastCache,
		logger:        logger.With().Str("component", "weather").Logger(),
	}
}

// Current returns present conditions with their advisory. The second
// return value reports whether the result came from the cache.
func (s *Service) Current(ctx context.Context, lat, lon float64) (*models.WeatherReport, bool, error) {
	key := cache.WeatherKey("current", lat, lon)

	if cached, ok := s.currentCache.Get(key); ok {
		if report, ok := cached.(*models.WeatherReport); ok {
			return report, true, nil
		}
	}

	reading, err := s.provider.Current(ctx, lat, lon)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", ErrWeatherUnavailable, err)
	}

	report := &models.WeatherReport{
		Reading:  reading,
		Advisory: MapAdvisory(reading),
	}
	s.currentCache.Set(key, report)

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("condition", string(reading.Condition)).
		Msg("current weather fetched")

	return report, false, nil
}

// Forecast returns a multi-day forecast with per-day advisories. The
// cache key includes the day count so different horizons do not collide.
func (s *Service) Forecast(ctx context.Context, lat, lon float64, days int) (*models.WeatherForecast, bool, error) {
	key := cache.WeatherKey(fmt.Sprintf("forecast:%d", days), lat, lon)

	if cached, ok := s.forecastCache.Get(key); ok {
		if forecast, ok := cached.(*models.WeatherForecast); ok {
			return forecast, true, nil
		}
	}

	readings, err := s.provider.Forecast(ctx, lat, lon, days)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s", ErrWeatherUnavailable, err)
	}

	forecast := &models.WeatherForecast{
		Days: make([]models.WeatherReport, 0, len(readings)),
	}
	for _, reading := range readings {
		forecast.Days = append(forecast.Days, models.WeatherReport{
			Reading:  reading,
			Advisory: MapAdvisory(reading),
		})
	}
	s.forecastCache.Set(key, forecast)

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Int("days", len(forecast.Days)).
		Msg("forecast fetched")

	return forecast, false, nil
}
