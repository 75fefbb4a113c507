// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package models

import (
	"strconv"
	"strings"
)

// Flag is a numeric or boolean source column that may be absent.
//
// Source exports encode flags such as hasFreeMins and paid as 0/1, true/false
// or leave them empty. Comparisons follow the rules used by the reports:
// only a present value equal to zero "equals zero"; everything else,
// including a missing value, is treated as non-zero.
type Flag struct {
	Value float64
	Valid bool
}

// ParseFlag converts a raw cell into a Flag. Empty and non-numeric cells
// produce an invalid flag.
func ParseFlag(raw string) Flag {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Flag{}
	}
	switch strings.ToLower(s) {
	case "true":
		return Flag{Value: 1, Valid: true}
	case "false":
		return Flag{Value: 0, Valid: true}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Flag{}
	}
	return Flag{Value: v, Valid: true}
}

// EqualsZero reports whether the flag is present and equal to zero.
func (f Flag) EqualsZero() bool {
	return f.Valid && f.Value == 0
}
