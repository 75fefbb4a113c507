// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package timebucket

import "errors"

// ErrUnparseableTimestamp is returned when a timestamp cell cannot be parsed.
var ErrUnparseableTimestamp = errors.New("unparseable timestamp")

// ErrInvalidOffset is returned for a malformed UTC offset.
var ErrInvalidOffset = errors.New("invalid UTC offset")

// ErrInvalidDate is returned for a malformed calendar date.
var ErrInvalidDate = errors.New("invalid date")
