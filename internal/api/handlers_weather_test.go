// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/goccy/go-json"
)

func TestWeatherCurrent(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/weather/current?lat=40.71&lon=-74.00", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	payload, _ := json.Marshal(resp.Data)
	var report struct {
		Reading struct {
			Temperature float64 `json:"temperature"`
			Condition   string  `json:"condition"`
		} `json:"reading"`
		Advisory struct {
			Advice string `json:"advice"`
		} `json:"advisory"`
	}
	if err := json.Unmarshal(payload, &report); err != nil {
		t.Fatal(err)
	}
	if report.Reading.Temperature != 22 {
		t.Errorf("Temperature = %v, want 22", report.Reading.Temperature)
	}
	if report.Advisory.Advice == "" {
		t.Error("expected advisory attached to report")
	}
}

func TestWeatherCurrentCached(t *testing.T) {
	ts := newTestServer(t)

	first := decodeResponse(t, ts.do(t, http.MethodGet, "/api/v1/weather/current?lat=40.71&lon=-74.00", nil))
	if first.Metadata.Cached {
		t.Error("first request should not be cached")
	}

	// Nearby coordinates round to the same cache key.
	second := decodeResponse(t, ts.do(t, http.MethodGet, "/api/v1/weather/current?lat=40.712&lon=-74.001", nil))
	if !second.Metadata.Cached {
		t.Error("nearby coordinates should share a cache entry")
	}
	if ts.provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1", ts.provider.calls)
	}
}

func TestWeatherCurrentMissingCoordinates(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/weather/current", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWeatherCurrentInvalidLatitude(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/weather/current?lat=95&lon=0", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", resp.Error)
	}
}

func TestWeatherCurrentProviderDown(t *testing.T) {
	ts := newTestServer(t)
	ts.provider.err = errors.New("upstream timeout")

	rec := ts.do(t, http.MethodGet, "/api/v1/weather/current?lat=40.71&lon=-74.00", nil)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Error == nil || resp.Error.Code != "WEATHER_UNAVAILABLE" {
		t.Errorf("error = %+v, want WEATHER_UNAVAILABLE", resp.Error)
	}
}

func TestWeatherForecast(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/weather/forecast?lat=40.71&lon=-74.00&days=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	payload, _ := json.Marshal(resp.Data)
	var forecast struct {
		Days []json.RawMessage `json:"days"`
	}
	if err := json.Unmarshal(payload, &forecast); err != nil {
		t.Fatal(err)
	}
	if len(forecast.Days) != 5 {
		t.Errorf("days = %d, want 5", len(forecast.Days))
	}
}

func TestWeatherForecastInvalidDays(t *testing.T) {
	ts := newTestServer(t)

	for _, query := range []string{"days=0", "days=8"} {
		rec := ts.do(t, http.MethodGet, "/api/v1/weather/forecast?lat=40.71&lon=-74.00&"+query, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", query, rec.Code)
		}
	}
}

func TestWeatherForecastDistinctDayCountsCached(t *testing.T) {
	ts := newTestServer(t)

	ts.do(t, http.MethodGet, "/api/v1/weather/forecast?lat=40.71&lon=-74.00&days=3", nil)
	ts.do(t, http.MethodGet, "/api/v1/weather/forecast?lat=40.71&lon=-74.00&days=5", nil)

	// Different horizons must not collide on one cache entry.
	if ts.provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2 for distinct horizons", ts.provider.calls)
	}

	resp := decodeResponse(t, ts.do(t, http.MethodGet, "/api/v1/weather/forecast?lat=40.71&lon=-74.00&days=3", nil))
	if !resp.Metadata.Cached {
		t.Error("repeat 3-day forecast should be cached")
	}
}
