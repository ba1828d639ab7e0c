// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"

	"github.com/garderobe-app/garderobe/internal/cache"
	"github.com/garderobe-app/garderobe/internal/metrics"
	"github.com/garderobe-app/garderobe/internal/models"
)

type fakeItemProvider struct {
	items []models.WardrobeItem
	err   error
	calls int
}

func (f *fakeItemProvider) ItemsByOwner(_ context.Context, ownerID string) ([]models.WardrobeItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	owned := make([]models.WardrobeItem, 0, len(f.items))
	for _, item := range f.items {
		if item.OwnerID == ownerID {
			owned = append(owned, item)
		}
	}
	return owned, nil
}

type fakeEmbedder struct {
	vector []float64
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

type fakeLaundry struct {
	hampered map[string]struct{}
	err      error
}

func (f *fakeLaundry) HamperedItemIDs(_ context.Context, _ string) (map[string]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hampered, nil
}

// rankedItem builds an item whose similarity to the query vector {1, 0}
// equals the given cosine value.
func rankedItem(id string, cosine float64, mutate ...func(*models.WardrobeItem)) models.WardrobeItem {
	sine := 1 - cosine*cosine
	if sine < 0 {
		sine = 0
	}
	item := models.WardrobeItem{
		ID:          id,
		OwnerID:     "alice",
		Category:    models.CategoryTops,
		Formality:   models.FormalityCasual,
		Season:      models.SeasonSummer,
		Cleanliness: models.CleanlinessFresh,
		Embedding:   []float64{cosine, math.Sqrt(sine)},
	}
	for _, m := range mutate {
		m(&item)
	}
	return item
}

func newTestEngine(t *testing.T, items *fakeItemProvider, embedder *fakeEmbedder, laundry *fakeLaundry) *Engine {
	t.Helper()

	engine, err := NewEngine(DefaultConfig(), zerolog.Nop(), items, embedder, laundry,
		cache.New("recommendations", 30*time.Minute))
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return engine
}

func TestRecommendRanksDescending(t *testing.T) {
	items := &fakeItemProvider{items: []models.WardrobeItem{
		rankedItem("low", 0.2),
		rankedItem("high", 0.9),
		rankedItem("mid", 0.5),
	}}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	engine := newTestEngine(t, items, embedder, &fakeLaundry{})

	result, err := engine.Recommend(context.Background(), "alice", Context{Occasion: "work"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if result.TotalItems != 3 {
		t.Errorf("expected 3 items, got %d", result.TotalItems)
	}
	wantOrder := []string{"high", "mid", "low"}
	for i, want := range wantOrder {
		if result.TopItems[i].Item.ID != want {
			t.Errorf("TopItems[%d] = %s, want %s", i, result.TopItems[i].Item.ID, want)
		}
	}
	for i := 1; i < len(result.TopItems); i++ {
		if result.TopItems[i].Similarity > result.TopItems[i-1].Similarity {
			t.Error("TopItems not sorted descending by similarity")
		}
	}
}

func TestRecommendStableTieBreak(t *testing.T) {
	// Equal scores keep insertion order so identical inputs give
	// deterministic results.
	items := &fakeItemProvider{items: []models.WardrobeItem{
		rankedItem("first", 0.5),
		rankedItem("second", 0.5),
		rankedItem("third", 0.5),
	}}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	engine := newTestEngine(t, items, embedder, &fakeLaundry{})

	result, err := engine.Recommend(context.Background(), "alice", Context{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if result.TopItems[i].Item.ID != want {
			t.Errorf("TopItems[%d] = %s, want %s", i, result.TopItems[i].Item.ID, want)
		}
	}
}

func TestRecommendCandidatePoolCapAndTopN(t *testing.T) {
	var wardrobe []models.WardrobeItem
	for i := 0; i < 30; i++ {
		cosine := 0.99 - float64(i)*0.01
		category := models.CategoryTops
		if i%2 == 1 {
			category = models.CategoryBottoms
		}
		wardrobe = append(wardrobe, rankedItem(fmt.Sprintf("item%02d", i), cosine,
			func(w *models.WardrobeItem) { w.Category = category }))
	}
	items := &fakeItemProvider{items: wardrobe}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	engine := newTestEngine(t, items, embedder, &fakeLaundry{})

	result, err := engine.Recommend(context.Background(), "alice", Context{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if result.TotalItems != 20 {
		t.Errorf("expected pool capped at 20, got %d", result.TotalItems)
	}
	if len(result.TopItems) != 10 {
		t.Errorf("expected 10 top items, got %d", len(result.TopItems))
	}

	// TopItems is exactly the first 10 of the full ranked list
	for i := 0; i < 10; i++ {
		want := fmt.Sprintf("item%02d", i)
		if result.TopItems[i].Item.ID != want {
			t.Errorf("TopItems[%d] = %s, want %s", i, result.TopItems[i].Item.ID, want)
		}
	}

	// Category buckets flatten back to the capped pool
	flattened := 0
	seen := make(map[string]bool)
	for _, bucket := range result.ItemsByCategory {
		for i, scored := range bucket {
			flattened++
			if seen[scored.Item.ID] {
				t.Errorf("item %s appears in multiple buckets", scored.Item.ID)
			}
			seen[scored.Item.ID] = true
			if i > 0 && bucket[i].Similarity > bucket[i-1].Similarity {
				t.Error("category bucket not sorted descending")
			}
		}
	}
	if flattened != 20 {
		t.Errorf("expected 20 items across buckets, got %d", flattened)
	}
}

func TestRecommendCacheIdempotence(t *testing.T) {
	items := &fakeItemProvider{items: []models.WardrobeItem{rankedItem("a", 0.8)}}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	engine := newTestEngine(t, items, embedder, &fakeLaundry{})

	reqCtx := Context{Occasion: "work", Formality: "casual"}
	first, err := engine.Recommend(context.Background(), "alice", reqCtx)
	if err != nil {
		t.Fatalf("first Recommend failed: %v", err)
	}

	// Wardrobe changes after the first call; cached result must be
	// returned unchanged, with no recomputation.
	items.items = append(items.items, rankedItem("b", 0.95))

	second, err := engine.Recommend(context.Background(), "alice", reqCtx)
	if err != nil {
		t.Fatalf("second Recommend failed: %v", err)
	}

	if first != second {
		t.Error("expected the cached result instance on repeat request")
	}
	if embedder.calls != 1 {
		t.Errorf("expected a single embedding call, got %d", embedder.calls)
	}
	if items.calls != 1 {
		t.Errorf("expected a single item load, got %d", items.calls)
	}

	snapshot := engine.Snapshot()
	if snapshot.CacheHits != 1 || snapshot.CacheMisses != 1 {
		t.Errorf("expected 1 hit / 1 miss, got %d / %d", snapshot.CacheHits, snapshot.CacheMisses)
	}
}

func TestRecommendDifferentContextsKeySeparately(t *testing.T) {
	items := &fakeItemProvider{items: []models.WardrobeItem{rankedItem("a", 0.8)}}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	engine := newTestEngine(t, items, embedder, &fakeLaundry{})

	if _, err := engine.Recommend(context.Background(), "alice", Context{Occasion: "work"}); err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Recommend(context.Background(), "alice", Context{Occasion: "party"}); err != nil {
		t.Fatal(err)
	}

	if embedder.calls != 2 {
		t.Errorf("expected 2 embedding calls for distinct contexts, got %d", embedder.calls)
	}
}

func TestRecommendEmbeddingFailurePropagates(t *testing.T) {
	items := &fakeItemProvider{items: []models.WardrobeItem{rankedItem("a", 0.8)}}
	embedder := &fakeEmbedder{err: errors.New("upstream 503")}
	engine := newTestEngine(t, items, embedder, &fakeLaundry{})

	_, err := engine.Recommend(context.Background(), "alice", Context{})
	if err == nil {
		t.Fatal("expected error on embedding failure")
	}
	if !errors.Is(err, ErrEmbeddingUnavailable) {
		t.Errorf("expected ErrEmbeddingUnavailable, got %v", err)
	}
	// No partial result was cached
	if _, ok := engine.cache.Get(engine.cacheKey("alice", Context{})); ok {
		t.Error("expected nothing cached after failure")
	}
}

func TestRecommendLaundryStateExcluded(t *testing.T) {
	items := &fakeItemProvider{items: []models.WardrobeItem{
		// Highest raw similarity but flagged needs_wash
		rankedItem("dirty", 0.99, func(w *models.WardrobeItem) { w.Cleanliness = models.CleanlinessNeedsWash }),
		rankedItem("clean", 0.3),
	}}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	engine := newTestEngine(t, items, embedder, &fakeLaundry{})

	result, err := engine.Recommend(context.Background(), "alice", Context{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	for _, scored := range result.TopItems {
		if scored.Item.ID == "dirty" {
			t.Error("needs_wash item must never appear in TopItems")
		}
	}
	for _, bucket := range result.ItemsByCategory {
		for _, scored := range bucket {
			if scored.Item.ID == "dirty" {
				t.Error("needs_wash item must never appear in a category bucket")
			}
		}
	}
}

func TestRecommendHamperExclusions(t *testing.T) {
	items := &fakeItemProvider{items: []models.WardrobeItem{
		rankedItem("hampered", 0.9),
		rankedItem("kept", 0.5),
	}}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	laundry := &fakeLaundry{hampered: map[string]struct{}{"hampered": {}, "unknown-id": {}}}
	engine := newTestEngine(t, items, embedder, laundry)

	result, err := engine.Recommend(context.Background(), "alice", Context{})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if result.TotalItems != 1 || result.TopItems[0].Item.ID != "kept" {
		t.Errorf("expected only the kept item, got %+v", result.TopItems)
	}
	// ExcludedCount reflects the supplied set size, not exclusions applied
	if result.ExcludedCount != 2 {
		t.Errorf("expected ExcludedCount 2, got %d", result.ExcludedCount)
	}
}

func TestRecommendEmptyWardrobe(t *testing.T) {
	items := &fakeItemProvider{}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	engine := newTestEngine(t, items, embedder, &fakeLaundry{})

	result, err := engine.Recommend(context.Background(), "alice", Context{})
	if err != nil {
		t.Fatalf("empty wardrobe must not be an error: %v", err)
	}
	if result.TotalItems != 0 {
		t.Errorf("expected TotalItems 0, got %d", result.TotalItems)
	}
	if len(result.TopItems) != 0 {
		t.Errorf("expected no top items, got %d", len(result.TopItems))
	}
}

func TestRecommendSeasonFormalityFromContext(t *testing.T) {
	items := &fakeItemProvider{items: []models.WardrobeItem{
		rankedItem("summer-casual", 0.5),
		rankedItem("winter", 0.9, func(w *models.WardrobeItem) { w.Season = models.SeasonWinter }),
		rankedItem("formal", 0.9, func(w *models.WardrobeItem) { w.Formality = models.FormalityFormal }),
	}}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	engine := newTestEngine(t, items, embedder, &fakeLaundry{})

	result, err := engine.Recommend(context.Background(), "alice",
		Context{Season: "summer", Formality: "casual"})
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	if result.TotalItems != 1 || result.TopItems[0].Item.ID != "summer-casual" {
		t.Errorf("expected context filters applied, got %+v", result.TopItems)
	}
}

func TestRecommendOwnerRequired(t *testing.T) {
	engine := newTestEngine(t, &fakeItemProvider{}, &fakeEmbedder{vector: []float64{1}}, &fakeLaundry{})

	_, err := engine.Recommend(context.Background(), "", Context{})
	if !errors.Is(err, ErrOwnerRequired) {
		t.Errorf("expected ErrOwnerRequired, got %v", err)
	}
}

func TestInvalidateOwner(t *testing.T) {
	items := &fakeItemProvider{items: []models.WardrobeItem{rankedItem("a", 0.8)}}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	engine := newTestEngine(t, items, embedder, &fakeLaundry{})

	if _, err := engine.Recommend(context.Background(), "alice", Context{}); err != nil {
		t.Fatal(err)
	}

	evicted := engine.InvalidateOwner("alice")
	if evicted != 1 {
		t.Errorf("expected 1 evicted entry, got %d", evicted)
	}

	if _, err := engine.Recommend(context.Background(), "alice", Context{}); err != nil {
		t.Fatal(err)
	}
	if embedder.calls != 2 {
		t.Errorf("expected recomputation after invalidation, got %d embed calls", embedder.calls)
	}
}

func candidateSamples(t *testing.T) (uint64, float64) {
	t.Helper()
	var m dto.Metric
	if err := metrics.RecommendationCandidates.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount(), m.GetHistogram().GetSampleSum()
}

func TestRecommendObservesCandidateCount(t *testing.T) {
	items := &fakeItemProvider{items: []models.WardrobeItem{
		rankedItem("a", 0.8),
		rankedItem("b", 0.4),
	}}
	embedder := &fakeEmbedder{vector: []float64{1, 0}}
	engine := newTestEngine(t, items, embedder, &fakeLaundry{})

	countBefore, sumBefore := candidateSamples(t)

	if _, err := engine.Recommend(context.Background(), "alice", Context{}); err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	count, sum := candidateSamples(t)
	if count != countBefore+1 {
		t.Errorf("sample count = %d, want %d", count, countBefore+1)
	}
	if sum != sumBefore+2 {
		t.Errorf("sample sum = %v, want %v (2 eligible candidates)", sum, sumBefore+2)
	}

	// A cached repeat skips composition and records nothing.
	if _, err := engine.Recommend(context.Background(), "alice", Context{}); err != nil {
		t.Fatalf("repeat Recommend failed: %v", err)
	}
	if count2, _ := candidateSamples(t); count2 != count {
		t.Errorf("sample count after cached repeat = %d, want %d", count2, count)
	}
}

func TestNewEngineValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TopN = 50 // exceeds MaxCandidates

	_, err := NewEngine(cfg, zerolog.Nop(), &fakeItemProvider{}, &fakeEmbedder{}, nil, cache.New("r", time.Minute))
	if err == nil {
		t.Error("expected config validation error")
	}

	_, err = NewEngine(DefaultConfig(), zerolog.Nop(), nil, &fakeEmbedder{}, nil, cache.New("r", time.Minute))
	if err == nil {
		t.Error("expected error for missing item provider")
	}
}
