// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package models

import (
	"strconv"
	"strings"
	"time"
)

// EndReasonNotStarted marks a chat session that never began.
const EndReasonNotStarted = "NOT_STARTED"

// DateLayout is the calendar date format used in every output table.
const DateLayout = "2006-01-02"

// ChatRecord is one completed or attempted chat session from the chat log.
type ChatRecord struct {
	// UserID identifies the customer who opened the chat
	UserID string `json:"user_id"`

	// CreatedAt is the session start time in UTC
	CreatedAt time.Time `json:"created_at"`

	// HasFreeMins is non-zero when the session used promotional free minutes
	HasFreeMins Flag `json:"has_free_mins"`

	// EndReason is the terminal status reported by the chat service
	EndReason string `json:"end_reason"`
}

// Qualifying reports whether the chat counts toward the milestone: it was
// paid for (no free minutes) and it actually started.
func (c ChatRecord) Qualifying() bool {
	return c.HasFreeMins.EqualsZero() && c.EndReason != EndReasonNotStarted
}

// UserProfile is a registered user from the profile log.
type UserProfile struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DailyMilestoneResult holds the users who reached the chat milestone on one
// calendar day.
type DailyMilestoneResult struct {
	// Date is midnight UTC of the target day
	Date time.Time `json:"date"`

	// UniqueUserCount is len(UserIDs)
	UniqueUserCount int `json:"unique_user_count"`

	// UserIDs is sorted ascending
	UserIDs []string `json:"user_ids"`
}

// DateString formats the result date as YYYY-MM-DD.
func (r DailyMilestoneResult) DateString() string {
	return r.Date.Format(DateLayout)
}

// Cells returns the result as an output row: date, count, comma-joined ids.
func (r DailyMilestoneResult) Cells() []string {
	return []string{
		r.DateString(),
		strconv.Itoa(r.UniqueUserCount),
		strings.Join(r.UserIDs, ","),
	}
}
