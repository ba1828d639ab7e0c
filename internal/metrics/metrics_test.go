// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/client_golang/prometheus/testutil"
	gobreaker "github.com/sony/gobreaker/v2"
)

func TestRecordCacheLookup(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits.WithLabelValues("test-cache"))
	missesBefore := testutil.ToFloat64(CacheMisses.WithLabelValues("test-cache"))

	RecordCacheLookup("test-cache", true)
	RecordCacheLookup("test-cache", true)
	RecordCacheLookup("test-cache", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("test-cache")); got != hitsBefore+2 {
		t.Errorf("hits = %v, want %v", got, hitsBefore+2)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("test-cache")); got != missesBefore+1 {
		t.Errorf("misses = %v, want %v", got, missesBefore+1)
	}
}

func TestRecordSweep(t *testing.T) {
	evictedBefore := testutil.ToFloat64(CacheEvictions.WithLabelValues("sweep-cache"))

	RecordSweep("sweep-cache", 7, 42)

	if got := testutil.ToFloat64(CacheEvictions.WithLabelValues("sweep-cache")); got != evictedBefore+7 {
		t.Errorf("evictions = %v, want %v", got, evictedBefore+7)
	}
	if got := testutil.ToFloat64(CacheEntries.WithLabelValues("sweep-cache")); got != 42 {
		t.Errorf("entries = %v, want 42", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	cachedBefore := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("cached"))
	composedBefore := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("composed"))

	RecordRecommendation("cached", 0)
	RecordRecommendation("composed", 50*time.Millisecond)
	RecordRecommendation("error", 0)

	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("cached")); got != cachedBefore+1 {
		t.Errorf("cached total = %v, want %v", got, cachedBefore+1)
	}
	if got := testutil.ToFloat64(RecommendationsTotal.WithLabelValues("composed")); got != composedBefore+1 {
		t.Errorf("composed total = %v, want %v", got, composedBefore+1)
	}
}

func TestRecordProviderCall(t *testing.T) {
	errorsBefore := testutil.ToFloat64(ProviderErrors.WithLabelValues("weather"))

	RecordProviderCall("weather", 20*time.Millisecond, nil)
	RecordProviderCall("weather", 20*time.Millisecond, errors.New("upstream down"))

	if got := testutil.ToFloat64(ProviderErrors.WithLabelValues("weather")); got != errorsBefore+1 {
		t.Errorf("provider errors = %v, want %v", got, errorsBefore+1)
	}
}

func TestRecordBreakerState(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		want  float64
	}{
		{gobreaker.StateClosed, 0},
		{gobreaker.StateHalfOpen, 1},
		{gobreaker.StateOpen, 2},
	}

	for _, tt := range tests {
		RecordBreakerState("test-breaker", tt.state)
		if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")); got != tt.want {
			t.Errorf("gauge after %v = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestRecordAPIRequestHistogram(t *testing.T) {
	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 30*time.Millisecond)

	// Histogram observations are visible through the collected sample count.
	var m dto.Metric
	hist, err := APIRequestDuration.GetMetricWithLabelValues("GET", "/api/v1/recommendations")
	if err != nil {
		t.Fatalf("get histogram: %v", err)
	}
	if err := hist.(interface{ Write(*dto.Metric) error }).Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	if m.GetHistogram().GetSampleCount() == 0 {
		t.Error("expected at least one histogram observation")
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+2 {
		t.Errorf("active = %v, want %v", got, before+2)
	}

	TrackActiveRequest(false)
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %v, want %v after release", got, before)
	}
}

func TestConcurrentRecording(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordCacheLookup("concurrent", true)
			RecordRecommendation("composed", time.Millisecond)
			RecordProviderCall("embedding", time.Millisecond, nil)
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("concurrent")); got < 20 {
		t.Errorf("concurrent hits = %v, want >= 20", got)
	}
}
