// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

// Package timebucket parses source timestamps and maps them to (date, hour)
// buckets in a fixed reporting offset.
//
// Every funnel stage buckets its events through the same Bucketer so that
// per-stage tables can be joined on (agent, date, hour).
package timebucket

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/northstar/internal/models"
)

// DefaultOffset is Indian Standard Time, the reporting zone of the funnel
// dashboards.
const DefaultOffset = "+05:30"

// Bucketer converts instants into calendar buckets in a fixed offset.
// The zero value buckets in UTC.
type Bucketer struct {
	loc *time.Location
}

// New returns a Bucketer for the given location.
func New(loc *time.Location) Bucketer {
	return Bucketer{loc: loc}
}

// NewWithOffset returns a Bucketer for a "+hh:mm" style offset.
func NewWithOffset(offset string) (Bucketer, error) {
	loc, err := ParseOffset(offset)
	if err != nil {
		return Bucketer{}, err
	}
	return New(loc), nil
}

// Default returns a Bucketer in DefaultOffset.
func Default() Bucketer {
	b, err := NewWithOffset(DefaultOffset)
	if err != nil {
		panic(err)
	}
	return b
}

// Location returns the bucketing zone.
func (b Bucketer) Location() *time.Location {
	if b.loc == nil {
		return time.UTC
	}
	return b.loc
}

// Bucket returns the calendar date and hour of t in the bucketing zone.
func (b Bucketer) Bucket(t time.Time) models.Bucket {
	local := t.In(b.Location())
	return models.Bucket{
		Date: local.Format(models.DateLayout),
		Hour: local.Hour(),
	}
}

// ParseOffset parses a fixed UTC offset such as "+05:30", "-0400" or "UTC".
func ParseOffset(offset string) (*time.Location, error) {
	s := strings.TrimSpace(offset)
	switch strings.ToUpper(s) {
	case "UTC", "Z", "+00:00", "-00:00":
		return time.UTC, nil
	case "":
		return nil, fmt.Errorf("%w: empty offset", ErrInvalidOffset)
	}

	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, fmt.Errorf("%w: %q must start with + or -", ErrInvalidOffset, offset)
	}

	body := strings.ReplaceAll(s[1:], ":", "")
	if len(body) != 4 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
	}
	hours, err := strconv.Atoi(body[:2])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
	}
	minutes, err := strconv.Atoi(body[2:])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOffset, offset)
	}
	if hours > 14 || minutes > 59 {
		return nil, fmt.Errorf("%w: %q out of range", ErrInvalidOffset, offset)
	}

	seconds := sign * (hours*3600 + minutes*60)
	name := fmt.Sprintf("UTC%s%02d:%02d", s[:1], hours, minutes)
	return time.FixedZone(name, seconds), nil
}
