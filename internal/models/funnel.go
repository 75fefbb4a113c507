// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package models

// Agent compensation types.
const (
	CompensationPayroll   = "PAYROLL"
	CompensationFreelance = "FREELANCE"
)

// AgentMetadata is the reference entry for one consulting agent.
type AgentMetadata struct {
	AgentID          string `json:"id" koanf:"id" validate:"required"`
	Name             string `json:"name" koanf:"name"`
	CompensationType string `json:"type" koanf:"type" validate:"omitempty,oneof=PAYROLL FREELANCE"`
}

// Bucket is a calendar date and hour of day in the reporting time zone.
type Bucket struct {
	// Date is formatted as YYYY-MM-DD
	Date string `json:"date"`

	// Hour is 0-23
	Hour int `json:"hour"`
}

// Less orders buckets chronologically.
func (b Bucket) Less(o Bucket) bool {
	if b.Date != o.Date {
		return b.Date < o.Date
	}
	return b.Hour < o.Hour
}

// BucketedCount is one cell of a per-stage table. AgentID is empty for
// overall (all-agent) metrics.
type BucketedCount struct {
	AgentID string  `json:"agent_id,omitempty"`
	Bucket  Bucket  `json:"bucket"`
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
}

// Funnel metric names. They double as output column names.
const (
	MetricChatIntakeRequests   = "chat_intake_requests"
	MetricChatAccepted         = "chat_accepted"
	MetricChatCompleted        = "chat_completed"
	MetricCancelledRequests    = "cancelled_requests"
	MetricAvgTimeDiffMinutes   = "avg_time_diff_minutes"
	MetricPaidChatsCompleted   = "paid_chats_completed"
	MetricChatIntakeOverall    = "chat_intake_overall"
	MetricChatAcceptedOverall  = "chat_accepted_overall"
	MetricChatCompletedOverall = "chat_completed_overall"
	MetricAstrosLive           = "astros_live"
	MetricUsersLive            = "users_live"
)

// AgentHourlyRow is one row of the per-agent wide table. A nil metric means
// the stage had no data for this (agent, date, hour), which is distinct from
// a count of zero.
type AgentHourlyRow struct {
	AgentID            string   `json:"agent_id"`
	Bucket             Bucket   `json:"bucket"`
	ChatIntakeRequests *int     `json:"chat_intake_requests"`
	ChatAccepted       *int     `json:"chat_accepted"`
	ChatCompleted      *int     `json:"chat_completed"`
	CancelledRequests  *int     `json:"cancelled_requests"`
	AvgTimeDiffMinutes *float64 `json:"avg_time_diff_minutes"`
	PaidChatsCompleted *int     `json:"paid_chats_completed"`
}

// OverallHourlyRow is one row of the all-agent wide table.
type OverallHourlyRow struct {
	Bucket               Bucket `json:"bucket"`
	ChatIntakeOverall    *int   `json:"chat_intake_overall"`
	ChatAcceptedOverall  *int   `json:"chat_accepted_overall"`
	ChatCompletedOverall *int   `json:"chat_completed_overall"`
	AstrosLive           *int   `json:"astros_live"`
	UsersLive            *int   `json:"users_live"`
}
