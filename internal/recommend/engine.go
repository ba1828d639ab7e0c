// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/garderobe-app/garderobe/internal/cache"
	"github.com/garderobe-app/garderobe/internal/metrics"
	"github.com/garderobe-app/garderobe/internal/models"
)

// ItemProvider supplies an owner's wardrobe items. Typically implemented
// by the wardrobe store; items are read-only snapshots.
type ItemProvider interface {
	// ItemsByOwner returns all items belonging to the owner.
	ItemsByOwner(ctx context.Context, ownerID string) ([]models.WardrobeItem, error)
}

// Embedder produces an embedding vector for a text. Implemented by the
// embedding client; calls may fail or time out.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// LaundryProvider supplies the set of item IDs currently in the laundry
// hamper for an owner. Hamper records may be more current than item
// cleanliness flags, so this set is the authoritative exclusion source.
type LaundryProvider interface {
	HamperedItemIDs(ctx context.Context, ownerID string) (map[string]struct{}, error)
}

// Metrics is a snapshot of engine counters.
type Metrics struct {
	Requests    int64 `json:"requests"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	Errors      int64 `json:"errors"`
}

// Engine composes outfit recommendations: it builds a query embedding from
// the request context, filters the owner's wardrobe, ranks candidates by
// cosine similarity, and groups the result for presentation, caching the
// composed payload. It is safe for concurrent use.
//
// Concurrent identical-key requests that both miss the cache may both
// recompute and both write; the last Set wins. This at-most-one-extra-
// computation race is accepted rather than paying for per-key locking.
type Engine struct {
	config   Config
	logger   zerolog.Logger
	items    ItemProvider
	embedder Embedder
	laundry  LaundryProvider
	cache    *cache.Cache

	requestCount atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	errorCount   atomic.Int64
}

// NewEngine creates a recommendation engine. The cache instance is shared
// with the operational cache-management endpoints; the engine owns its key
// schema ("rec:{owner}:...") within it.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, logger zerolog.Logger, items ItemProvider, embedder Embedder, laundry LaundryProvider, resultCache *cache.Cache) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if items == nil {
		return nil, fmt.Errorf("item provider is required")
	}
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if resultCache == nil {
		return nil, fmt.Errorf("result cache is required")
	}

	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		items:    items,
		embedder: embedder,
		laundry:  laundry,
		cache:    resultCache,
	}, nil
}

// Recommend generates outfit recommendations for an owner and context.
//
// A cached result inside the TTL window is returned unchanged without
// recomputation, even if the underlying wardrobe changed since it was
// composed. An embedding-provider failure aborts the whole operation;
// there is no partial ranking without a query embedding. Zero eligible
// candidates is not an error and yields an empty result.
func (e *Engine) Recommend(ctx context.Context, ownerID string, reqCtx Context) (*Result, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}

	e.requestCount.Add(1)
	logger := e.logger.With().Str("owner_id", ownerID).Logger()

	key := e.cacheKey(ownerID, reqCtx)
	if cached, ok := e.cache.Get(key); ok {
		if result, ok := cached.(*Result); ok {
			e.cacheHits.Add(1)
			logger.Debug().Str("key", key).Msg("recommendation cache hit")
			return result, nil
		}
	}
	e.cacheMisses.Add(1)

	result, err := e.compose(ctx, ownerID, reqCtx, logger)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	e.cache.Set(key, result)
	return result, nil
}

// compose runs the uncached pipeline: query text → embedding → filter →
// rank → group.
func (e *Engine) compose(ctx context.Context, ownerID string, reqCtx Context, logger zerolog.Logger) (*Result, error) {
	queryText := BuildQueryText(reqCtx)

	embedCtx, cancel := context.WithTimeout(ctx, e.config.EmbedTimeout)
	defer cancel()

	queryEmbedding, err := e.embedder.Embed(embedCtx, queryText)
	if err != nil {
		logger.Warn().Err(err).Str("query", queryText).Msg("query embedding failed")
		return nil, fmt.Errorf("%w: %s", ErrEmbeddingUnavailable, err)
	}

	excludeIDs, err := e.excludedItemIDs(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load laundry exclusions: %w", err)
	}

	items, err := e.items.ItemsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load wardrobe items: %w", err)
	}

	spec := buildFilterSpec(ownerID, reqCtx, excludeIDs)
	candidates := Filter(items, spec)
	metrics.RecommendationCandidates.Observe(float64(len(candidates)))

	ranked := e.rank(candidates, queryEmbedding)
	result := e.groupResult(queryText, ranked, len(excludeIDs))

	logger.Debug().
		Int("wardrobe_items", len(items)).
		Int("candidates", len(candidates)).
		Int("returned", result.TotalItems).
		Msg("recommendation composed")

	return result, nil
}

// excludedItemIDs reads the hamper exclusion set. A nil laundry provider
// means no exclusion tracking is configured.
func (e *Engine) excludedItemIDs(ctx context.Context, ownerID string) (map[string]struct{}, error) {
	if e.laundry == nil {
		return nil, nil
	}
	return e.laundry.HamperedItemIDs(ctx, ownerID)
}

// buildFilterSpec derives filter criteria from the request context.
// Season and formality from the context narrow the candidate set; the
// remaining context fields only shape the query embedding.
func buildFilterSpec(ownerID string, reqCtx Context, excludeIDs map[string]struct{}) FilterSpec {
	spec := FilterSpec{
		OwnerID:          ownerID,
		ExcludeIDs:       excludeIDs,
		RequireEmbedding: true,
	}
	if reqCtx.Season != "" {
		spec.Season = models.ParseSeason(reqCtx.Season)
	}
	if reqCtx.Formality != "" {
		spec.Formality = models.ParseFormality(reqCtx.Formality)
	}
	return spec
}

// rank scores every candidate against the query embedding and sorts
// descending by similarity. The sort is stable: ties keep input order so
// identical inputs always produce identical output.
func (e *Engine) rank(candidates []models.WardrobeItem, queryEmbedding []float64) []ScoredItem {
	scored := make([]ScoredItem, 0, len(candidates))
	for _, item := range candidates {
		scored = append(scored, ScoredItem{
			Item:       item,
			Similarity: CosineSimilarity(queryEmbedding, item.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	return scored
}

// groupResult caps the ranked list, groups it by category, and selects
// the global top-N.
func (e *Engine) groupResult(queryText string, ranked []ScoredItem, excludedCount int) *Result {
	pool := ranked
	if len(pool) > e.config.MaxCandidates {
		pool = pool[:e.config.MaxCandidates]
	}

	byCategory := make(map[models.Category][]ScoredItem)
	for _, item := range pool {
		byCategory[item.Item.Category] = append(byCategory[item.Item.Category], item)
	}

	topN := e.config.TopN
	if topN > len(ranked) {
		topN = len(ranked)
	}

	return &Result{
		QueryText:       queryText,
		TotalItems:      len(pool),
		ItemsByCategory: byCategory,
		TopItems:        ranked[:topN],
		ExcludedCount:   excludedCount,
		GeneratedAt:     time.Now(),
	}
}

// cacheKey builds the canonical cache key for an (owner, context) pair.
func (e *Engine) cacheKey(ownerID string, reqCtx Context) string {
	return cache.Key("rec:"+ownerID, contextKeyParams{
		Occasion:  reqCtx.Occasion,
		Weather:   reqCtx.Weather,
		Season:    reqCtx.Season,
		Formality: reqCtx.Formality,
		Query:     reqCtx.Query,
	})
}

// InvalidateOwner evicts all cached recommendations for an owner. Callers
// use it when a wardrobe change must be visible before the TTL elapses;
// nothing calls it implicitly. Returns the number of entries evicted.
func (e *Engine) InvalidateOwner(ownerID string) int {
	prefix := "rec:" + ownerID + ":"
	return e.cache.ClearMatching(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
}

// Snapshot returns current engine counters.
func (e *Engine) Snapshot() Metrics {
	return Metrics{
		Requests:    e.requestCount.Load(),
		CacheHits:   e.cacheHits.Load(),
		CacheMisses: e.cacheMisses.Load(),
		Errors:      e.errorCount.Load(),
	}
}
