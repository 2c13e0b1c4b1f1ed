// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package validation

import (
	"strings"
	"testing"

	"github.com/gmaxing/engine/internal/models"
)

func TestValidateStruct_UserFeedback(t *testing.T) {
	valid := models.UserFeedback{
		UserID:        "user-1",
		ProtocolID:    "gmx-foundation",
		Rating:        4,
		Completed:     true,
		Effectiveness: 8,
		Difficulty:    6,
		Enjoyment:     7,
	}

	tests := []struct {
		name      string
		mutate    func(fb *models.UserFeedback)
		wantField string
	}{
		{"valid passes", func(fb *models.UserFeedback) {}, ""},
		{"rating too high", func(fb *models.UserFeedback) { fb.Rating = 6 }, "Rating"},
		{"rating too low", func(fb *models.UserFeedback) { fb.Rating = 0 }, "Rating"},
		{"effectiveness out of range", func(fb *models.UserFeedback) { fb.Effectiveness = 11 }, "Effectiveness"},
		{"difficulty out of range", func(fb *models.UserFeedback) { fb.Difficulty = 0 }, "Difficulty"},
		{"enjoyment out of range", func(fb *models.UserFeedback) { fb.Enjoyment = -1 }, "Enjoyment"},
		{"missing user", func(fb *models.UserFeedback) { fb.UserID = "" }, "UserID"},
		{"missing protocol", func(fb *models.UserFeedback) { fb.ProtocolID = "" }, "ProtocolID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := valid
			tt.mutate(&fb)

			verr := ValidateStruct(&fb)
			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", verr)
				}
				return
			}

			if verr == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			found := false
			for _, fe := range verr.Errors() {
				if fe.Field() == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention field %s", verr.Errors(), tt.wantField)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	fb := models.UserFeedback{} // everything missing or out of range
	verr := ValidateStruct(&fb)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want errors")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %s, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Message == "" {
		t.Error("Message is empty")
	}
	if len(verr.Errors()) > 1 {
		if _, ok := apiErr.Details["fields"]; !ok {
			t.Error("multi-error details missing fields list")
		}
		if !strings.Contains(apiErr.Message, ";") {
			t.Error("multi-error message not combined")
		}
	}
}
