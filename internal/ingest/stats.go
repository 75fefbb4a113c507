// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package ingest

import (
	"context"
	"time"

	"github.com/tomtom215/northstar/internal/logging"
	"github.com/tomtom215/northstar/internal/metrics"
	"github.com/tomtom215/northstar/internal/models"
)

// maxLoggedRejections caps per-row warnings for one table.
const maxLoggedRejections = 20

// Policy controls how rows that cannot be loaded are handled.
type Policy struct {
	// StrictTimestamps aborts the load on the first unparseable timestamp
	// instead of rejecting the row.
	StrictTimestamps bool
}

// LoadStats tracks the outcome of loading one input table.
type LoadStats struct {
	Table     string            `json:"table"`
	Read      int               `json:"read"`
	Accepted  int               `json:"accepted"`
	Rejected  int               `json:"rejected"`
	RowErrors []models.RowError `json:"row_errors,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
}

// Duration returns how long the load took.
func (s *LoadStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RowsPerSecond returns the load throughput.
func (s *LoadStats) RowsPerSecond() float64 {
	d := s.Duration().Seconds()
	if d == 0 {
		return 0
	}
	return float64(s.Read) / d
}

// Reject records a rejected row: it is kept in RowErrors, counted in the
// rejected-rows metric and logged. Only the first rejections of a table are
// logged individually.
func (s *LoadStats) Reject(ctx context.Context, rowErr models.RowError) {
	s.Rejected++
	s.RowErrors = append(s.RowErrors, rowErr)
	metrics.RecordRejectedRow(rowErr.Table, rowErr.Column)

	logger := logging.WithComponent(ctx, "ingest")
	switch {
	case s.Rejected <= maxLoggedRejections:
		logger.Warn().
			Str("table", rowErr.Table).
			Int("row", rowErr.Row).
			Str("column", rowErr.Column).
			Str("value", rowErr.Value).
			Str("reason", rowErr.Reason).
			Msg("Rejected input row")
	case s.Rejected == maxLoggedRejections+1:
		logger.Warn().
			Str("table", rowErr.Table).
			Msg("Further rejected rows are counted but not logged")
	}
}
