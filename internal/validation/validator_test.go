// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package validation

import (
	"strings"
	"testing"
)

// ===================================================================================================
// Singleton Validator Tests
// ===================================================================================================

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}

	if v1 == nil {
		t.Error("GetValidator() should not return nil")
	}
}

// ===================================================================================================
// ValidateStruct Tests
// ===================================================================================================

type runRequest struct {
	StartDate string `validate:"required,calendardate"`
	EndDate   string `validate:"required,calendardate"`
	Offset    string `validate:"omitempty,utcoffset"`
	Workers   int    `validate:"min=0,max=256"`
}

type agentEntry struct {
	AgentID string `validate:"required"`
	Type    string `validate:"required,oneof=PAYROLL FREELANCE"`
}

func TestValidateStruct_Valid(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
	}{
		{"iso dates", &runRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"}},
		{"legacy dates", &runRequest{StartDate: "01-01-24", EndDate: "31-01-24", Offset: "+05:30"}},
		{"max workers", &runRequest{StartDate: "2024-01-01", EndDate: "2024-01-01", Workers: 256}},
		{"payroll agent", &agentEntry{AgentID: "a1", Type: "PAYROLL"}},
		{"freelance agent", &agentEntry{AgentID: "a1", Type: "FREELANCE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateStruct(tt.input); err != nil {
				t.Errorf("ValidateStruct() unexpected error: %v", err)
			}
		})
	}
}

func TestValidateStruct_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
		wantMsg   string
	}{
		{
			name:      "missing start date",
			input:     &runRequest{EndDate: "2024-01-31"},
			wantField: "StartDate",
			wantTag:   "required",
			wantMsg:   "StartDate is required",
		},
		{
			name:      "slash date",
			input:     &runRequest{StartDate: "2024/01/01", EndDate: "2024-01-31"},
			wantField: "StartDate",
			wantTag:   "calendardate",
			wantMsg:   "YYYY-MM-DD",
		},
		{
			name:      "bad offset",
			input:     &runRequest{StartDate: "2024-01-01", EndDate: "2024-01-31", Offset: "IST"},
			wantField: "Offset",
			wantTag:   "utcoffset",
			wantMsg:   "UTC offset",
		},
		{
			name:      "too many workers",
			input:     &runRequest{StartDate: "2024-01-01", EndDate: "2024-01-31", Workers: 1000},
			wantField: "Workers",
			wantTag:   "max",
			wantMsg:   "Workers must be at most 256",
		},
		{
			name:      "unknown compensation type",
			input:     &agentEntry{AgentID: "a1", Type: "CONTRACT"},
			wantField: "Type",
			wantTag:   "oneof",
			wantMsg:   "Type must be one of: PAYROLL FREELANCE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() expected error, got nil")
			}

			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("Field() = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("Tag() = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRequestValidationError_Fields(t *testing.T) {
	err := ValidateStruct(&runRequest{Workers: -1})
	if err == nil {
		t.Fatal("expected validation error")
	}

	got := strings.Join(err.Fields(), ",")
	if got != "EndDate,StartDate,Workers" {
		t.Errorf("Fields() = %q", got)
	}
}

func TestRequestValidationError_Empty(t *testing.T) {
	err := &RequestValidationError{}
	if err.Error() != "validation failed" {
		t.Errorf("Error() = %q", err.Error())
	}
}
