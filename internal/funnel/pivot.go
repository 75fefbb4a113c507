// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package funnel

import (
	"sort"

	"github.com/tomtom215/northstar/internal/models"
)

func intPtr(v float64) *int {
	n := int(v)
	return &n
}

func floatPtr(v float64) *float64 {
	return &v
}

// PivotAgents outer-joins per-agent stage tables on (agent, date, hour).
// Cells absent from a stage table stay nil. Overall metrics are ignored.
func PivotAgents(tables ...[]models.BucketedCount) []models.AgentHourlyRow {
	rows := make(map[cellKey]*models.AgentHourlyRow)

	for _, table := range tables {
		for _, c := range table {
			k := cellKey{agent: c.AgentID, bucket: c.Bucket}
			row, ok := rows[k]
			if !ok {
				row = &models.AgentHourlyRow{AgentID: c.AgentID, Bucket: c.Bucket}
			}

			switch c.Metric {
			case models.MetricChatIntakeRequests:
				row.ChatIntakeRequests = intPtr(c.Value)
			case models.MetricChatAccepted:
				row.ChatAccepted = intPtr(c.Value)
			case models.MetricChatCompleted:
				row.ChatCompleted = intPtr(c.Value)
			case models.MetricCancelledRequests:
				row.CancelledRequests = intPtr(c.Value)
			case models.MetricAvgTimeDiffMinutes:
				row.AvgTimeDiffMinutes = floatPtr(c.Value)
			case models.MetricPaidChatsCompleted:
				row.PaidChatsCompleted = intPtr(c.Value)
			default:
				continue
			}
			rows[k] = row
		}
	}

	keys := make([]cellKey, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	out := make([]models.AgentHourlyRow, len(keys))
	for i, k := range keys {
		out[i] = *rows[k]
	}
	return out
}

// PivotOverall outer-joins overall stage tables on (date, hour).
func PivotOverall(tables ...[]models.BucketedCount) []models.OverallHourlyRow {
	rows := make(map[models.Bucket]*models.OverallHourlyRow)

	for _, table := range tables {
		for _, c := range table {
			row, ok := rows[c.Bucket]
			if !ok {
				row = &models.OverallHourlyRow{Bucket: c.Bucket}
			}

			switch c.Metric {
			case models.MetricChatIntakeOverall:
				row.ChatIntakeOverall = intPtr(c.Value)
			case models.MetricChatAcceptedOverall:
				row.ChatAcceptedOverall = intPtr(c.Value)
			case models.MetricChatCompletedOverall:
				row.ChatCompletedOverall = intPtr(c.Value)
			case models.MetricAstrosLive:
				row.AstrosLive = intPtr(c.Value)
			case models.MetricUsersLive:
				row.UsersLive = intPtr(c.Value)
			default:
				continue
			}
			rows[c.Bucket] = row
		}
	}

	keys := make([]models.Bucket, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	out := make([]models.OverallHourlyRow, len(keys))
	for i, k := range keys {
		out[i] = *rows[k]
	}
	return out
}
