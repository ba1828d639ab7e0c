// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/garderobe-app/garderobe/internal/metrics"
	"github.com/garderobe-app/garderobe/internal/weather"
)

// maxForecastDays bounds the forecast horizon the provider supports.
const maxForecastDays = 7

// weatherRequest carries validated coordinates.
type weatherRequest struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

// parseCoordinates extracts and validates lat/lon query parameters.
func parseCoordinates(w http.ResponseWriter, r *http.Request) (float64, float64, bool) {
	lat, latOK := getFloatParam(r, "lat")
	lon, lonOK := getFloatParam(r, "lon")
	if !latOK || !lonOK {
		respondError(w, http.StatusBadRequest, "COORDINATES_REQUIRED",
			"lat and lon query parameters are required", nil)
		return 0, 0, false
	}

	req := weatherRequest{Latitude: lat, Longitude: lon}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return 0, 0, false
	}
	return lat, lon, true
}

// WeatherCurrent handles GET /api/v1/weather/current?lat=..&lon=..
// Nearby coordinates share a cache entry: keys round to two decimal
// places, roughly a one kilometre cell.
func (h *Handler) WeatherCurrent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	lat, lon, ok := parseCoordinates(w, r)
	if !ok {
		return
	}

	report, cached, err := h.weather.Current(r.Context(), lat, lon)
	if err != nil {
		if errors.Is(err, weather.ErrWeatherUnavailable) {
			respondError(w, http.StatusBadGateway, "WEATHER_UNAVAILABLE",
				"the weather provider is unavailable; try again later", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "WEATHER_FAILED",
			"failed to fetch weather", err)
		return
	}

	metrics.RecordCacheLookup("weather", cached)
	respondSuccess(w, report, start, cached)
}

// WeatherForecast handles GET /api/v1/weather/forecast?lat=..&lon=..&days=N.
// Days defaults to 3 and is capped at the provider horizon.
func (h *Handler) WeatherForecast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	lat, lon, ok := parseCoordinates(w, r)
	if !ok {
		return
	}

	days := getIntParam(r, "days", 3)
	if days < 1 || days > maxForecastDays {
		respondError(w, http.StatusBadRequest, "INVALID_DAYS",
			"days must be between 1 and 7", nil)
		return
	}

	forecast, cached, err := h.weather.Forecast(r.Context(), lat, lon, days)
	if err != nil {
		if errors.Is(err, weather.ErrWeatherUnavailable) {
			respondError(w, http.StatusBadGateway, "WEATHER_UNAVAILABLE",
				"the weather provider is unavailable; try again later", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "WEATHER_FAILED",
			"failed to fetch forecast", err)
		return
	}

	metrics.RecordCacheLookup("forecast", cached)
	respondSuccess(w, forecast, start, cached)
}
