// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package normalize

import (
	"fmt"

	"github.com/tomtom215/northstar/internal/models"
	"github.com/tomtom215/northstar/internal/timebucket"
)

// EventsTable names the event log in row errors.
const EventsTable = "events"

// Events converts flattened records into typed funnel events.
//
// A record whose event_time cannot be parsed is rejected and reported in the
// returned row errors. When strict is set the first rejection aborts the
// conversion and is returned as the error.
func Events(records []models.EventRecord, strict bool) ([]models.Event, []models.RowError, error) {
	events := make([]models.Event, 0, len(records))
	var rejected []models.RowError

	for _, rec := range records {
		rawTime := rec.Value(models.ColEventTime)
		ts, err := timebucket.ParseTimestamp(rawTime)
		if err != nil {
			rowErr := models.RowError{
				Table:  EventsTable,
				Row:    rec.Row,
				Column: models.ColEventTime,
				Value:  rawTime,
				Err:    err,
				Reason: err.Error(),
			}
			rejected = append(rejected, rowErr)
			if strict {
				return nil, rejected, fmt.Errorf("strict timestamp policy: %w", rowErr)
			}
			continue
		}

		events = append(events, models.Event{
			Row:           rec.Row,
			Name:          rec.Value(models.ColEventName),
			Time:          ts,
			UserID:        rec.Value(models.ColUserID),
			AgentID:       rec.Value(models.ColAstrologerID),
			ClientID:      rec.Value(models.ColClientID),
			ChatSessionID: rec.Value(models.ColChatSessionID),
			Paid:          models.ParseFlag(rec.Value(models.ColPaid)),
		})
	}

	return events, rejected, nil
}
