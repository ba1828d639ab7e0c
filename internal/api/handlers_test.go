// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/garderobe-app/garderobe/internal/cache"
	"github.com/garderobe-app/garderobe/internal/logging"
	"github.com/garderobe-app/garderobe/internal/models"
	"github.com/garderobe-app/garderobe/internal/recommend"
	"github.com/garderobe-app/garderobe/internal/wardrobe"
	"github.com/garderobe-app/garderobe/internal/weather"
)

// fakeEmbedder returns a fixed vector, or an error when failing is set.
type fakeEmbedder struct {
	vector  []float64
	failing bool
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	f.calls++
	if f.failing {
		return nil, errors.New("provider down")
	}
	return f.vector, nil
}

// fakeWeatherProvider returns a fixed reading.
type fakeWeatherProvider struct {
	reading models.WeatherReading
	err     error
	calls   int
}

func (f *fakeWeatherProvider) Current(_ context.Context, _, _ float64) (models.WeatherReading, error) {
	f.calls++
	return f.reading, f.err
}

func (f *fakeWeatherProvider) Forecast(_ context.Context, _, _ float64, days int) ([]models.WeatherReading, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	readings := make([]models.WeatherReading, days)
	for i := range readings {
		readings[i] = f.reading
	}
	return readings, nil
}

// testServer wires a full handler stack over an in-memory store.
type testServer struct {
	handler  http.Handler
	store    *wardrobe.Store
	embedder *fakeEmbedder
	provider *fakeWeatherProvider
	caches   map[string]*cache.Cache
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, closeFn, err := wardrobe.Open("")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = closeFn() })

	caches := map[string]*cache.Cache{
		"recommendations": cache.New("recommendations", 30*time.Minute),
		"weather":         cache.New("weather", 15*time.Minute),
		"forecast":        cache.New("forecast", time.Hour),
	}

	embedder := &fakeEmbedder{vector: []float64{1, 0, 0}}
	logger := logging.Logger()

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger,
		store, embedder, store, caches["recommendations"])
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	provider := &fakeWeatherProvider{
		reading: models.WeatherReading{
			Temperature: 22,
			Condition:   models.ConditionClear,
			Humidity:    40,
			ObservedAt:  time.Now(),
		},
	}
	weatherSvc := weather.NewService(provider, caches["weather"], caches["forecast"], logger)

	handler := NewHandler(engine, weatherSvc, store, caches, logger)
	router := NewRouter(handler, RouterConfig{
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   1000,
		RateLimitWindow: time.Minute,
	})

	return &testServer{
		handler:  router,
		store:    store,
		embedder: embedder,
		provider: provider,
		caches:   caches,
	}
}

func (ts *testServer) do(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func seedItem(t *testing.T, ts *testServer, ownerID, itemID string, embedding []float64) {
	t.Helper()
	item := &models.WardrobeItem{
		ID:          itemID,
		OwnerID:     ownerID,
		Name:        "item " + itemID,
		Category:    models.CategoryTops,
		Formality:   models.FormalityCasual,
		Season:      models.SeasonAll,
		Cleanliness: models.CleanlinessFresh,
		Embedding:   embedding,
	}
	if err := ts.store.PutItem(context.Background(), item); err != nil {
		t.Fatal(err)
	}
}
