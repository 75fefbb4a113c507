// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

// Package validation provides struct validation using go-playground/validator v10.
//
// The package wraps the validator library with a thread-safe singleton
// instance, the custom tags the pipeline needs and readable error messages.
//
// # Custom Tags
//
//   - calendardate: a run date in YYYY-MM-DD or DD-MM-YY form
//   - utcoffset: a fixed reporting offset such as +05:30
//
// # Usage
//
//	type RunRequest struct {
//	    StartDate string `validate:"required,calendardate"`
//	    EndDate   string `validate:"required,calendardate"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    return fmt.Errorf("invalid run request: %w", verr)
//	}
//
// Agent reference entries are validated with the same singleton
// (`oneof=PAYROLL FREELANCE` on the compensation type).
package validation
