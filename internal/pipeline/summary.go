// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package pipeline

import (
	"time"

	"github.com/tomtom215/northstar/internal/ingest"
	"github.com/tomtom215/northstar/internal/normalize"
)

// Summary describes one batch run. It is written as JSON next to the reports.
type Summary struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	// Stages lists every executed stage in run order
	Stages []StageTiming `json:"stages"`

	// Inputs has one entry per loaded table
	Inputs []*ingest.LoadStats `json:"inputs"`

	Milestone *MilestoneSummary `json:"milestone,omitempty"`
	Funnel    *FunnelSummary    `json:"funnel,omitempty"`

	// Outputs maps each written table to its path
	Outputs map[string]string `json:"outputs"`
}

// StageTiming is the timing of one stage.
type StageTiming struct {
	Name            string  `json:"name"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// MilestoneSummary describes the daily milestone stage.
type MilestoneSummary struct {
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date"`
	WindowDays      int    `json:"window_days"`
	TargetCount     int    `json:"target_count"`
	Chats           int    `json:"chats"`
	QualifyingChats int    `json:"qualifying_chats"`
	Profiles        int    `json:"profiles"`
	Days            int    `json:"days"`
	UserDays        int    `json:"user_days"`
}

// FunnelSummary describes the hourly funnel stage.
type FunnelSummary struct {
	UTCOffset        string              `json:"utc_offset"`
	Events           int                 `json:"events"`
	AgentsRegistered int                 `json:"agents_registered"`
	Payload          normalize.Stats     `json:"payload"`
	PayloadFailures  []normalize.Failure `json:"payload_failures,omitempty"`
	PayloadColumns   []string            `json:"payload_columns"`
	StageRows        map[string]int      `json:"stage_rows"`
	AgentRows        int                 `json:"agent_rows"`
	OverallRows      int                 `json:"overall_rows"`
}

// RejectedRows returns the total rejected input rows across tables.
func (s *Summary) RejectedRows() int {
	n := 0
	for _, in := range s.Inputs {
		n += in.Rejected
	}
	return n
}

// Duration returns the wall time of the run.
func (s *Summary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}
