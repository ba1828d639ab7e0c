// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package embedding

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/garderobe-app/garderobe/internal/logging"
	"github.com/garderobe-app/garderobe/internal/metrics"
)

// ErrEmptyText indicates an embedding was requested for empty text.
var ErrEmptyText = errors.New("embedding text is empty")

// ClientConfig holds embedding provider settings.
type ClientConfig struct {
	// BaseURL of the provider API.
	BaseURL string `koanf:"base_url"`

	// APIKey authenticates requests.
	APIKey string `koanf:"api_key"`

	// Model is the embedding model identifier.
	Model string `koanf:"model"`

	// Timeout bounds each provider call.
	// Default: 10s
	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond is the client-side rate limit toward the
	// provider. Zero disables limiting.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

// Client generates embedding vectors via the provider's HTTP API. It
// implements the recommendation engine's Embedder interface. Repeated
// upstream failures open the circuit breaker so requests fail fast while
// the provider recovers.
type Client struct {
	config  ClientConfig
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[[]float64]
	limiter *rate.Limiter
}

// NewClient creates an embedding client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	cb := gobreaker.NewCircuitBreaker[[]float64](gobreaker.Settings{
		Name:        "embedding-api",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerState(name, to)
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
		},
	})

	return &Client{
		config:  cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		cb:      cb,
		limiter: limiter,
	}
}

// embedRequest is the provider's request payload.
type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

// embedResponse is the provider's response payload.
type embedResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed returns the embedding vector for the text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	start := time.Now()
	vector, err := c.cb.Execute(func() ([]float64, error) {
		return c.embed(ctx, text)
	})
	metrics.RecordProviderCall("embedding", time.Since(start), err)
	return vector, err
}

func (c *Client) embed(ctx context.Context, text string) ([]float64, error) {
	body, err := json.Marshal(embedRequest{
		Model: c.config.Model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/v1/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("embedding provider returned %d: %s", resp.StatusCode, detail)
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}
	if len(parsed.Data) == 0 || len(parsed.Data[0].Embedding) == 0 {
		return nil, errors.New("embedding response contained no vector")
	}

	return parsed.Data[0].Embedding, nil
}
