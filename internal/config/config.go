// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

// Package config loads and validates Garderobe configuration.
//
// Configuration is layered with Koanf v2: built-in defaults, then an
// optional YAML file, then environment variables with the GARDEROBE_
// prefix (highest priority). Nested keys use underscores:
//
//	GARDEROBE_SERVER_PORT=8080
//	GARDEROBE_WEATHER_API_KEY=...
//	GARDEROBE_RECOMMEND_CACHE_TTL=30m
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/garderobe-app/garderobe/internal/embedding"
	"github.com/garderobe-app/garderobe/internal/logging"
	"github.com/garderobe-app/garderobe/internal/recommend"
	"github.com/garderobe-app/garderobe/internal/weather"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/garderobe/config.yaml",
	"/etc/garderobe/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "GARDEROBE_CONFIG_PATH"

// envPrefix is stripped from environment variables before mapping them
// to koanf paths.
const envPrefix = "GARDEROBE_"

// Config is the root configuration for the service.
type Config struct {
	Server    ServerConfig           `koanf:"server"`
	Logging   logging.Config         `koanf:"logging"`
	Weather   WeatherConfig          `koanf:"weather"`
	Embedding embedding.ClientConfig `koanf:"embedding"`
	Recommend recommend.Config       `koanf:"recommend"`
	Wardrobe  WardrobeConfig         `koanf:"wardrobe"`
	Cache     CacheConfig            `koanf:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host to bind.
	// Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port to listen on.
	// Default: 8080
	Port int `koanf:"port"`

	// Timeout is the per-request read/write timeout.
	// Default: 30s
	Timeout time.Duration `koanf:"timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 15s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimitReqs is the per-IP request budget per window.
	// Default: 100
	RateLimitReqs int `koanf:"rate_limit_reqs"`

	// RateLimitWindow is the rate limit window.
	// Default: 1m
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists allowed CORS origins.
	// Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`
}

// WeatherConfig holds the weather provider client plus cache TTLs.
type WeatherConfig struct {
	Client weather.ClientConfig `koanf:"client"`

	// CurrentTTL is how long a current-conditions report stays valid.
	// Default: 15m
	CurrentTTL time.Duration `koanf:"current_ttl"`

	// ForecastTTL is how long a forecast stays valid.
	// Default: 1h
	ForecastTTL time.Duration `koanf:"forecast_ttl"`
}

// WardrobeConfig holds the snapshot store settings.
type WardrobeConfig struct {
	// Path is the BadgerDB directory. Empty opens an in-memory store.
	Path string `koanf:"path"`
}

// CacheConfig holds settings shared by the in-process caches.
type CacheConfig struct {
	// SweepInterval is how often the background sweeper evicts expired
	// entries. Zero disables sweeping; entries still expire lazily.
	// Default: 5m
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// defaultConfig returns a Config with all defaults applied. These are
// overridden by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: logging.Config{
			Level:     "info",
			Format:    "json",
			Caller:    false,
			Timestamp: true,
		},
		Weather: WeatherConfig{
			Client: weather.ClientConfig{
				BaseURL:           "https://api.openweathermap.org",
				Timeout:           10 * time.Second,
				RequestsPerSecond: 1,
			},
			CurrentTTL:  15 * time.Minute,
			ForecastTTL: time.Hour,
		},
		Embedding: embedding.ClientConfig{
			Model:             "text-embedding-3-small",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
		},
		Recommend: recommend.DefaultConfig(),
		Wardrobe: WardrobeConfig{
			Path: "/data/garderobe",
		},
		Cache: CacheConfig{
			SweepInterval: 5 * time.Minute,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config file: optional YAML file (if one exists)
//  3. Environment variables: GARDEROBE_-prefixed, highest priority
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// GARDEROBE_WEATHER_CLIENT_API_KEY -> weather.client.api_key is not
	// derivable mechanically, so env mapping keeps one underscore level
	// per known section and treats the rest as the key.
	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envSections are the top-level keys env vars map into, plus the nested
// sections that need an extra path segment.
var envSections = []string{
	"server", "logging", "weather_client", "weather", "embedding",
	"recommend", "wardrobe", "cache",
}

// envTransform maps GARDEROBE_SECTION_SOME_KEY to section.some_key.
// The weather client nests one level deeper: GARDEROBE_WEATHER_CLIENT_API_KEY
// maps to weather.client.api_key.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range envSections {
		prefix := section + "_"
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		key := strings.TrimPrefix(s, prefix)
		if section == "weather_client" {
			return "weather.client." + key
		}
		return section + "." + key
	}
	return s
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.RateLimitReqs <= 0 {
		return fmt.Errorf("server.rate_limit_reqs must be positive, got %d", c.Server.RateLimitReqs)
	}
	if c.Weather.CurrentTTL <= 0 {
		return fmt.Errorf("weather.current_ttl must be positive, got %v", c.Weather.CurrentTTL)
	}
	if c.Weather.ForecastTTL <= 0 {
		return fmt.Errorf("weather.forecast_ttl must be positive, got %v", c.Weather.ForecastTTL)
	}
	if c.Cache.SweepInterval < 0 {
		return fmt.Errorf("cache.sweep_interval cannot be negative, got %v", c.Cache.SweepInterval)
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}
