// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package weather

import (
	"strings"

	"github.com/garderobe-app/garderobe/internal/models"
)

// breathableMaterials is the subset the humidity rule filters down to.
var breathableMaterials = map[string]struct{}{
	"cotton": {},
	"linen":  {},
	"bamboo": {},
	"rayon":  {},
}

// MapAdvisory derives categorical clothing guidance from a weather
// reading. Pure and deterministic.
//
// Rules apply in a fixed order: the temperature band first, then
// condition-category additions, then the humidity adjustment. Each rule
// appends to the advice text and unions into the category/material/color
// lists; the humidity rule additionally removes non-breathable entries
// from the materials accumulated by earlier rules, so reordering would
// change the result.
func MapAdvisory(reading models.WeatherReading) models.WeatherAdvisory {
	var adv models.WeatherAdvisory

	applyTemperatureBand(&adv, reading.Temperature)
	applyCondition(&adv, reading.Condition)
	applyHumidity(&adv, reading.Humidity)

	return adv
}

// applyTemperatureBand applies exactly one non-overlapping band, checked
// in priority order: hot, cold, cool, then mild.
func applyTemperatureBand(adv *models.WeatherAdvisory, temp float64) {
	switch {
	case temp > 30:
		appendAdvice(adv, "Very hot today; pick light, loose pieces that breathe.")
		addCategories(adv, "shorts", "tank-tops", "sandals", "t-shirts")
		addAvoid(adv, "heavy jackets", "sweaters", "boots")
		addMaterials(adv, "cotton", "linen")
		addColors(adv, "white", "pastels", "light colors")

	case temp < 10:
		appendAdvice(adv, "Cold out there; layer up and cover extremities.")
		addCategories(adv, "coats", "boots", "gloves", "scarves", "sweaters")
		addAvoid(adv, "shorts", "sandals", "tank-tops")
		addMaterials(adv, "wool", "fleece", "down")
		addColors(adv, "dark colors", "jewel tones")

	case temp < 18:
		appendAdvice(adv, "Cool weather; a light outer layer will do.")
		addCategories(adv, "light jackets", "long sleeves", "jeans")
		addAvoid(adv, "shorts")
		addMaterials(adv, "denim", "knit", "cotton")
		addColors(adv, "earth tones")

	default:
		appendAdvice(adv, "Mild conditions; most outfits work.")
		addCategories(adv, "t-shirts", "jeans", "sneakers", "light layers")
		addMaterials(adv, "cotton")
		addColors(adv, "any")
	}
}

// applyCondition adds condition-specific guidance regardless of the
// temperature band.
func applyCondition(adv *models.WeatherAdvisory, condition models.ConditionCategory) {
	switch condition {
	case models.ConditionRain, models.ConditionDrizzle:
		appendAdvice(adv, "Rain expected; keep water off your clothes.")
		addCategories(adv, "rain jackets", "waterproof boots")
		addAvoid(adv, "suede shoes", "canvas shoes")
		addMaterials(adv, "waterproof")

	case models.ConditionStorm:
		appendAdvice(adv, "Stormy; wear sturdy, weatherproof layers.")
		addCategories(adv, "rain jackets", "waterproof boots")
		addAvoid(adv, "delicate fabrics", "long skirts")
		addMaterials(adv, "waterproof")

	case models.ConditionSnow:
		appendAdvice(adv, "Snow on the ground; insulated and waterproof wins.")
		addCategories(adv, "snow boots", "insulated jackets")
		addAvoid(adv, "sneakers", "canvas shoes")
		addMaterials(adv, "wool", "fleece", "waterproof")

	case models.ConditionFog:
		appendAdvice(adv, "Low visibility; brighter colors help you be seen.")
		addColors(adv, "bright colors", "high-visibility")

	case models.ConditionWind:
		appendAdvice(adv, "Windy; choose fitted layers that stay put.")
		addCategories(adv, "windbreakers")
		addAvoid(adv, "loose skirts", "wide-brim hats")

	case models.ConditionClear:
		appendAdvice(adv, "Clear skies; sun protection is worth having.")
		addCategories(adv, "sunglasses", "hats")

	case models.ConditionClouds, models.ConditionUnknown:
		// No condition-specific additions.
	}
}

// applyHumidity runs last: it filters the accumulated materials down to a
// breathable subset and flags heavy layering. It depends on the lists
// populated by the earlier rules.
func applyHumidity(adv *models.WeatherAdvisory, humidity int) {
	if humidity <= 70 {
		return
	}

	appendAdvice(adv, "High humidity; stick to breathable fabrics.")

	filtered := adv.Materials[:0]
	for _, material := range adv.Materials {
		if _, ok := breathableMaterials[material]; ok {
			filtered = append(filtered, material)
		}
	}
	adv.Materials = filtered

	addAvoid(adv, "heavy layers", "synthetic fabrics")
}

func appendAdvice(adv *models.WeatherAdvisory, sentence string) {
	if adv.Advice == "" {
		adv.Advice = sentence
		return
	}
	adv.Advice = strings.TrimSuffix(adv.Advice, " ") + " " + sentence
}

func addCategories(adv *models.WeatherAdvisory, values ...string) {
	adv.RecommendedCategories = appendUnique(adv.RecommendedCategories, values...)
}

func addAvoid(adv *models.WeatherAdvisory, values ...string) {
	adv.AvoidCategories = appendUnique(adv.AvoidCategories, values...)
}

func addMaterials(adv *models.WeatherAdvisory, values ...string) {
	adv.Materials = appendUnique(adv.Materials, values...)
}

func addColors(adv *models.WeatherAdvisory, values ...string) {
	adv.Colors = appendUnique(adv.Colors, values...)
}

// appendUnique unions values into list, preserving first-seen order.
func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, existing := range list {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}
