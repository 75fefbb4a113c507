// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

// Package report joins funnel tables with agent reference data and projects
// the fixed output column sets. It performs no computation.
package report

import (
	"strconv"

	"github.com/tomtom215/northstar/internal/models"
)

// Output column sets, in file order.
var (
	MilestoneColumns = []string{"date", "unique_user_count", "user_ids"}

	AgentColumns = []string{
		"_id", "name", "type", "date", "hour",
		models.MetricChatIntakeRequests,
		models.MetricChatAccepted,
		models.MetricChatCompleted,
		models.MetricCancelledRequests,
		models.MetricAvgTimeDiffMinutes,
		models.MetricPaidChatsCompleted,
	}

	OverallColumns = []string{
		"date", "hour",
		models.MetricChatIntakeOverall,
		models.MetricChatAcceptedOverall,
		models.MetricChatCompletedOverall,
		models.MetricAstrosLive,
		models.MetricUsersLive,
	}
)

// AgentLookup resolves agent reference data by id.
type AgentLookup interface {
	Lookup(agentID string) (models.AgentMetadata, bool)
}

// AgentReportRow is a per-agent wide row with its reference data. Name and
// Type are nil for agents missing from the reference set.
type AgentReportRow struct {
	models.AgentHourlyRow
	Name *string `json:"name"`
	Type *string `json:"type"`
}

// AssembleAgents left-joins rows with agent metadata. Every input row is
// kept, in input order.
func AssembleAgents(rows []models.AgentHourlyRow, agents AgentLookup) []AgentReportRow {
	out := make([]AgentReportRow, len(rows))
	for i, row := range rows {
		out[i] = AgentReportRow{AgentHourlyRow: row}
		if agents == nil {
			continue
		}
		if meta, ok := agents.Lookup(row.AgentID); ok {
			name, typ := meta.Name, meta.CompensationType
			out[i].Name = &name
			out[i].Type = &typ
		}
	}
	return out
}

// Cells projects the row onto AgentColumns. Nil values become empty cells.
func (r AgentReportRow) Cells() []string {
	return []string{
		r.AgentID,
		str(r.Name),
		str(r.Type),
		r.Bucket.Date,
		strconv.Itoa(r.Bucket.Hour),
		num(r.ChatIntakeRequests),
		num(r.ChatAccepted),
		num(r.ChatCompleted),
		num(r.CancelledRequests),
		float(r.AvgTimeDiffMinutes),
		num(r.PaidChatsCompleted),
	}
}

// OverallCells projects an overall row onto OverallColumns.
func OverallCells(r models.OverallHourlyRow) []string {
	return []string{
		r.Bucket.Date,
		strconv.Itoa(r.Bucket.Hour),
		num(r.ChatIntakeOverall),
		num(r.ChatAcceptedOverall),
		num(r.ChatCompletedOverall),
		num(r.AstrosLive),
		num(r.UsersLive),
	}
}

// AgentRecords projects assembled rows for export.
func AgentRecords(rows []AgentReportRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.Cells()
	}
	return out
}

// OverallRecords projects overall rows for export.
func OverallRecords(rows []models.OverallHourlyRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = OverallCells(r)
	}
	return out
}

// MilestoneRecords projects daily milestone results for export.
func MilestoneRecords(results []models.DailyMilestoneResult) [][]string {
	out := make([][]string, len(results))
	for i, r := range results {
		out[i] = r.Cells()
	}
	return out
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func float(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
