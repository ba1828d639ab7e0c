// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package models

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"tops", CategoryTops},
		{"TOPS", CategoryTops},
		{"  shoes ", CategoryShoes},
		{"outerwear", CategoryOuterwear},
		{"hat", CategoryUnknown},
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		if got := ParseCategory(tt.input); got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseCleanlinessDefaultsToNeedsWash(t *testing.T) {
	// Malformed documents must be excluded from recommendations,
	// so unknown states normalize to needs_wash.
	tests := []string{"dirty", "", "washed?", "CLEAN"}
	for _, input := range tests {
		if got := ParseCleanliness(input); got != CleanlinessNeedsWash {
			t.Errorf("ParseCleanliness(%q) = %q, want %q", input, got, CleanlinessNeedsWash)
		}
	}

	if got := ParseCleanliness("Fresh"); got != CleanlinessFresh {
		t.Errorf("ParseCleanliness(Fresh) = %q, want fresh", got)
	}
}

func TestCleanlinessWearable(t *testing.T) {
	tests := []struct {
		state Cleanliness
		want  bool
	}{
		{CleanlinessFresh, true},
		{CleanlinessWornWearable, true},
		{CleanlinessNeedsWash, false},
		{CleanlinessInLaundry, false},
	}

	for _, tt := range tests {
		if got := tt.state.Wearable(); got != tt.want {
			t.Errorf("%s.Wearable() = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestParseConditionCategory(t *testing.T) {
	if got := ParseConditionCategory("Snow"); got != ConditionSnow {
		t.Errorf("ParseConditionCategory(Snow) = %q, want snow", got)
	}
	if got := ParseConditionCategory("hail"); got != ConditionUnknown {
		t.Errorf("ParseConditionCategory(hail) = %q, want unknown", got)
	}
}

func TestHasEmbedding(t *testing.T) {
	item := WardrobeItem{}
	if item.HasEmbedding() {
		t.Error("expected no embedding on zero-value item")
	}

	item.Embedding = []float64{0.1, 0.2}
	if !item.HasEmbedding() {
		t.Error("expected HasEmbedding to be true")
	}
}
