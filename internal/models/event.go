// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package models

import (
	"fmt"
	"time"
)

// Funnel event names emitted by the consultation app.
const (
	EventChatIntakeSubmit = "chat_intake_submit"
	EventAcceptChat       = "accept_chat"
	EventChatMsgSend      = "chat_msg_send"
	EventCancelWaitlist   = "confirm_cancel_waiting_list"
	EventOpenPage         = "open_page"
	EventPageOpen         = "page_open"
)

// Event log column names, as exported by the analytics pipeline.
const (
	ColEventName     = "event_name"
	ColEventTime     = "event_time"
	ColUserID        = "user_id"
	ColAstrologerID  = "astrologerId"
	ColClientID      = "clientId"
	ColChatSessionID = "chatSessionId"
	ColPaid          = "paid"
)

// EventRecord is one raw row of the event log. Payload holds the flattened
// JSON payload column and is nil when the payload was missing or could not
// be parsed.
type EventRecord struct {
	Row     int               `json:"row"`
	Fields  map[string]string `json:"fields"`
	Payload map[string]string `json:"payload,omitempty"`
}

// Get resolves a column by name. A non-empty raw column wins over a payload
// field of the same name.
func (r EventRecord) Get(name string) (string, bool) {
	if v, ok := r.Fields[name]; ok && v != "" {
		return v, true
	}
	if v, ok := r.Payload[name]; ok {
		return v, true
	}
	v, ok := r.Fields[name]
	return v, ok
}

// Value is Get without the presence flag.
func (r EventRecord) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Event is a typed funnel event.
//
// UserID is the actor of the event: the customer for intake, cancel and page
// events, the agent for accept_chat. AgentID and ClientID carry the other
// side of the interaction when the event has one.
type Event struct {
	Row           int       `json:"row"`
	Name          string    `json:"event_name"`
	Time          time.Time `json:"event_time"`
	UserID        string    `json:"user_id"`
	AgentID       string    `json:"astrologer_id,omitempty"`
	ClientID      string    `json:"client_id,omitempty"`
	ChatSessionID string    `json:"chat_session_id,omitempty"`
	Paid          Flag      `json:"paid"`
}

// IsPageView reports whether the event is a page open under either spelling.
func (e Event) IsPageView() bool {
	return e.Name == EventOpenPage || e.Name == EventPageOpen
}

// RowError describes an input row that was rejected during loading.
type RowError struct {
	Table  string `json:"table"`
	Row    int    `json:"row"`
	Column string `json:"column"`
	Value  string `json:"value"`
	Err    error  `json:"-"`
	Reason string `json:"reason"`
}

// Error implements error.
func (e RowError) Error() string {
	return fmt.Sprintf("%s row %d: column %s: %s", e.Table, e.Row, e.Column, e.Reason)
}

// Unwrap returns the underlying parse error.
func (e RowError) Unwrap() error {
	return e.Err
}
