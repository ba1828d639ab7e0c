// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package models

import (
	"strings"
	"time"
)

// ConditionCategory is the fixed enumeration of weather conditions the
// advisory mapper understands. Provider-specific condition codes are
// normalized into this set at the weather client boundary.
type ConditionCategory string

// Weather condition categories.
const (
	ConditionClear   ConditionCategory = "clear"
	ConditionClouds  ConditionCategory = "clouds"
	ConditionRain    ConditionCategory = "rain"
	ConditionDrizzle ConditionCategory = "drizzle"
	ConditionStorm   ConditionCategory = "storm"
	ConditionSnow    ConditionCategory = "snow"
	ConditionFog     ConditionCategory = "fog"
	ConditionWind    ConditionCategory = "wind"
	ConditionUnknown ConditionCategory = "unknown"
)

// ParseConditionCategory normalizes a raw condition string.
func ParseConditionCategory(s string) ConditionCategory {
	switch ConditionCategory(strings.ToLower(strings.TrimSpace(s))) {
	case ConditionClear, ConditionClouds, ConditionRain, ConditionDrizzle,
		ConditionStorm, ConditionSnow, ConditionFog, ConditionWind:
		return ConditionCategory(strings.ToLower(strings.TrimSpace(s)))
	default:
		return ConditionUnknown
	}
}

// WeatherReading is a single observation or forecast point from the
// weather provider.
type WeatherReading struct {
	// Temperature in degrees Celsius.
	Temperature float64 `json:"temperature"`

	// FeelsLike is the apparent temperature in degrees Celsius.
	FeelsLike float64 `json:"feels_like,omitempty"`

	// Condition is the normalized condition category.
	Condition ConditionCategory `json:"condition"`

	// Description is the provider's human-readable condition text.
	Description string `json:"description,omitempty"`

	// Humidity is the relative humidity percentage (0-100).
	Humidity int `json:"humidity"`

	// WindSpeed in meters per second.
	WindSpeed float64 `json:"wind_speed,omitempty"`

	// ObservedAt is the observation (or forecast target) time.
	ObservedAt time.Time `json:"observed_at"`
}

// WeatherAdvisory is categorical clothing guidance derived from a reading.
// It has no lifecycle of its own; it is recomputed from the reading.
type WeatherAdvisory struct {
	// Advice is the accumulated human-readable guidance text.
	Advice string `json:"advice"`

	// RecommendedCategories lists garment categories suited to the weather.
	RecommendedCategories []string `json:"recommended_categories"`

	// AvoidCategories lists garment categories to avoid.
	AvoidCategories []string `json:"avoid_categories"`

	// Materials lists fabric materials suited to the weather.
	Materials []string `json:"materials"`

	// Colors lists color palettes suited to the weather.
	Colors []string `json:"colors"`
}

// WeatherReport bundles a reading with its derived advisory, as returned
// by the weather endpoints.
type WeatherReport struct {
	Reading  WeatherReading  `json:"reading"`
	Advisory WeatherAdvisory `json:"advisory"`
}

// WeatherForecast is a multi-day forecast with per-day advisories.
type WeatherForecast struct {
	Days []WeatherReport `json:"days"`
}
