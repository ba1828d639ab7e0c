// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/garderobe-app/garderobe/internal/logging"
	"github.com/garderobe-app/garderobe/internal/metrics"
	"github.com/garderobe-app/garderobe/internal/models"
)

// ClientConfig holds HTTP weather provider settings.
type ClientConfig struct {
	// BaseURL of the provider API.
	BaseURL string `koanf:"base_url"`

	// APIKey authenticates requests.
	APIKey string `koanf:"api_key"`

	// Timeout bounds each provider call.
	// Default: 10s
	Timeout time.Duration `koanf:"timeout"`

	// RequestsPerSecond is the client-side rate limit toward the
	// provider. Zero disables limiting.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

// Client is an HTTP weather provider with a circuit breaker and a
// client-side rate limiter. Repeated upstream failures open the breaker
// so a degraded provider is not hammered while it recovers.
type Client struct {
	config  ClientConfig
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[any]
	limiter *rate.Limiter
}

// NewClient creates a weather provider client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "weather-api",
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

// Current implements Provider.
func (c *Client) Current(ctx context.Context, lat, lon float64) (models.WeatherReading, error) {
	var reading currentResponse
	if err := c.fetch(ctx, "/data/2.5/weather", url.Values{
		"lat":   {formatCoord(lat)},
		"lon":   {formatCoord(lon)},
		"units": {"metric"},
	}, &reading); err != nil {
		return models.WeatherReading{}, err
	}
	return reading.toReading(), nil
}

// Forecast implements Provider.
func (c *Client) Forecast(ctx context.Context, lat, lon float64, days int) ([]models.WeatherReading, error) {
	var forecast forecastResponse
	if err := c.fetch(ctx, "/data/2.5/forecast/daily", url.Values{
		"lat":   {formatCoord(lat)},
		"lon":   {formatCoord(lon)},
		"cnt":   {strconv.Itoa(days)},
		"units": {"metric"},
	}, &forecast); err != nil {
		return nil, err
	}

	readings := make([]models.WeatherReading, 0, len(forecast.List))
	for _, day := range forecast.List {
		readings = append(readings, day.toReading())
	}
	return readings, nil
}

// fetch performs a rate-limited, breaker-protected GET and decodes the
// JSON body into out.
func (c *Client) fetch(ctx context.Context, path string, query url.Values, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	start := time.Now()
	_, err := c.cb.Execute(func() (any, error) {
		query.Set("appid", c.config.APIKey)
		reqURL := c.config.BaseURL + path + "?" + query.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("weather request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return nil, fmt.Errorf("weather provider returned %d: %s", resp.StatusCode, body)
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return nil, fmt.Errorf("decode weather response: %w", err)
		}
		return nil, nil
	})
	metrics.RecordProviderCall("weather", time.Since(start), err)
	return err
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// currentResponse mirrors the provider's current-conditions payload.
type currentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Dt int64 `json:"dt"`
}

func (r currentResponse) toReading() models.WeatherReading {
	reading := models.WeatherReading{
		Temperature: r.Main.Temp,
		FeelsLike:   r.Main.FeelsLike,
		Humidity:    r.Main.Humidity,
		WindSpeed:   r.Wind.Speed,
		ObservedAt:  time.Unix(r.Dt, 0).UTC(),
	}
	if len(r.Weather) > 0 {
		reading.Condition = normalizeCondition(r.Weather[0].Main)
		reading.Description = r.Weather[0].Description
	} else {
		reading.Condition = models.ConditionUnknown
	}
	return reading
}

// forecastResponse mirrors the provider's daily-forecast payload.
type forecastResponse struct {
	List []forecastDay `json:"list"`
}

type forecastDay struct {
	Temp struct {
		Day float64 `json:"day"`
	} `json:"temp"`
	Humidity int     `json:"humidity"`
	Speed    float64 `json:"speed"`
	Weather  []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Dt int64 `json:"dt"`
}

func (d forecastDay) toReading() models.WeatherReading {
	reading := models.WeatherReading{
		Temperature: d.Temp.Day,
		Humidity:    d.Humidity,
		WindSpeed:   d.Speed,
		ObservedAt:  time.Unix(d.Dt, 0).UTC(),
	}
	if len(d.Weather) > 0 {
		reading.Condition = normalizeCondition(d.Weather[0].Main)
		reading.Description = d.Weather[0].Description
	} else {
		reading.Condition = models.ConditionUnknown
	}
	return reading
}

// normalizeCondition maps provider condition names onto the fixed
// enumeration the advisory mapper understands.
func normalizeCondition(main string) models.ConditionCategory {
	switch main {
	case "Clear":
		return models.ConditionClear
	case "Clouds":
		return models.ConditionClouds
	case "Rain":
		return models.ConditionRain
	case "Drizzle":
		return models.ConditionDrizzle
	case "Thunderstorm":
		return models.ConditionStorm
	case "Snow":
		return models.ConditionSnow
	case "Mist", "Fog", "Haze", "Smoke":
		return models.ConditionFog
	case "Squall", "Tornado":
		return models.ConditionWind
	default:
		return models.ParseConditionCategory(main)
	}
}
