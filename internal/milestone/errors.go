// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package milestone

import "errors"

// ErrInvalidConfig is returned when the milestone configuration is invalid.
var ErrInvalidConfig = errors.New("invalid milestone configuration")
