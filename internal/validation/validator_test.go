// Garderobe - Smart Wardrobe Recommendation Service
// Copyright 2026 Garderobe contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/garderobe-app/garderobe

package validation

import (
	"strings"
	"testing"
)

type weatherRequest struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

type recommendationRequest struct {
	OwnerID   string `validate:"required"`
	Season    string `validate:"omitempty,wardrobe_season"`
	Formality string `validate:"omitempty,wardrobe_formality"`
	Category  string `validate:"omitempty,wardrobe_category"`
}

func TestValidateStructPasses(t *testing.T) {
	req := weatherRequest{Latitude: 40.7128, Longitude: -74.0060}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("expected valid coordinates, got %v", err)
	}

	rec := recommendationRequest{OwnerID: "alice", Season: "winter", Formality: "business"}
	if err := ValidateStruct(&rec); err != nil {
		t.Errorf("expected valid request, got %v", err)
	}
}

func TestValidateStructCoordinateRanges(t *testing.T) {
	tests := []struct {
		name string
		req  weatherRequest
	}{
		{"latitude too high", weatherRequest{Latitude: 91, Longitude: 0}},
		{"latitude too low", weatherRequest{Latitude: -91, Longitude: 0}},
		{"longitude too high", weatherRequest{Latitude: 0, Longitude: 181}},
		{"longitude too low", weatherRequest{Latitude: 0, Longitude: -181}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(&tt.req); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateStructEnums(t *testing.T) {
	req := recommendationRequest{OwnerID: "alice", Season: "monsoon"}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected error for unknown season")
	}
	if !strings.Contains(err.Error(), "not a recognized season") {
		t.Errorf("unexpected message %q", err.Error())
	}

	req = recommendationRequest{OwnerID: "alice", Category: "hats"}
	if err := ValidateStruct(&req); err == nil {
		t.Error("expected error for unknown category")
	}

	// Empty optional enum fields pass via omitempty.
	req = recommendationRequest{OwnerID: "alice"}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("expected empty optionals to pass, got %v", err)
	}
}

func TestValidateStructRequired(t *testing.T) {
	req := recommendationRequest{}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected error for missing owner")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %s, want VALIDATION_ERROR", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "required") {
		t.Errorf("Message = %q, want required mention", apiErr.Message)
	}
	if apiErr.Details["field"] != "OwnerID" {
		t.Errorf("Details.field = %v, want OwnerID", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultipleFields(t *testing.T) {
	req := recommendationRequest{Season: "monsoon", Formality: "fancy"}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected errors")
	}
	if len(err.Errors()) != 3 {
		t.Fatalf("expected 3 field errors, got %d", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("expected fields list in details for multi-error case")
	}
}
