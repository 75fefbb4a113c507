// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package ingest

import "errors"

// ErrInputMissing is returned when a required input table is not available.
var ErrInputMissing = errors.New("input missing")

// ErrMissingColumn is returned when an input table lacks a required column.
var ErrMissingColumn = errors.New("required column missing")

// ErrRejectedRow is returned under the strict policy when a row cannot be loaded.
var ErrRejectedRow = errors.New("input row rejected")
