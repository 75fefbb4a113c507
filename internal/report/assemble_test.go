// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package report

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/northstar/internal/models"
)

type mapLookup map[string]models.AgentMetadata

func (m mapLookup) Lookup(id string) (models.AgentMetadata, bool) {
	a, ok := m[id]
	return a, ok
}

func ip(n int) *int { return &n }
func fp(v float64) *float64 { return &v }

func TestAssembleAgents(t *testing.T) {
	t.Parallel()

	rows := []models.AgentHourlyRow{
		{
			AgentID:            "a1",
			Bucket:             models.Bucket{Date: "2024-01-01", Hour: 10},
			ChatIntakeRequests: ip(3),
			AvgTimeDiffMinutes: fp(12.5),
		},
		{
			AgentID:           "ghost",
			Bucket:            models.Bucket{Date: "2024-01-01", Hour: 11},
			CancelledRequests: ip(0),
		},
	}
	agents := mapLookup{
		"a1": {AgentID: "a1", Name: "Asha", CompensationType: models.CompensationPayroll},
	}

	got := AssembleAgents(rows, agents)

	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}

	tests := []struct {
		name string
		row  AgentReportRow
		want string
	}{
		{"known agent", got[0], "a1|Asha|PAYROLL|2024-01-01|10|3||||12.5|"},
		{"unknown agent keeps null metadata", got[1], "ghost|||2024-01-01|11||||0||"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := tt.row.Cells()
			if len(cells) != len(AgentColumns) {
				t.Fatalf("cells = %d, columns = %d", len(cells), len(AgentColumns))
			}
			if joined := strings.Join(cells, "|"); joined != tt.want {
				t.Errorf("Cells() = %q, want %q", joined, tt.want)
			}
		})
	}

	if got[1].Name != nil || got[1].Type != nil {
		t.Error("unknown agent should have nil name and type")
	}
}

func TestAssembleAgents_NilLookup(t *testing.T) {
	t.Parallel()

	got := AssembleAgents([]models.AgentHourlyRow{{AgentID: "a1"}}, nil)
	if len(got) != 1 || got[0].Name != nil {
		t.Errorf("AssembleAgents(nil lookup) = %+v", got)
	}
}

func TestOverallCells(t *testing.T) {
	t.Parallel()

	row := models.OverallHourlyRow{
		Bucket:            models.Bucket{Date: "2024-01-02", Hour: 0},
		ChatIntakeOverall: ip(4),
		UsersLive:         ip(9),
	}
	got := strings.Join(OverallCells(row), "|")
	if got != "2024-01-02|0|4||||9" {
		t.Errorf("OverallCells() = %q", got)
	}
	if len(OverallCells(row)) != len(OverallColumns) {
		t.Error("overall cells do not match columns")
	}
}

func TestRecords(t *testing.T) {
	t.Parallel()

	results := []models.DailyMilestoneResult{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), UserIDs: []string{}},
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), UniqueUserCount: 2, UserIDs: []string{"a", "b"}},
	}
	want := [][]string{
		{"2024-01-01", "0", ""},
		{"2024-01-02", "2", "a,b"},
	}
	if got := MilestoneRecords(results); !reflect.DeepEqual(got, want) {
		t.Errorf("MilestoneRecords() = %v, want %v", got, want)
	}

	if got := OverallRecords(nil); len(got) != 0 {
		t.Errorf("OverallRecords(nil) = %v", got)
	}
	if got := AgentRecords([]AgentReportRow{{AgentHourlyRow: models.AgentHourlyRow{AgentID: "x"}}}); got[0][0] != "x" {
		t.Errorf("AgentRecords() = %v", got)
	}
}

func TestColumnSets(t *testing.T) {
	t.Parallel()

	if strings.Join(AgentColumns, ",") != "_id,name,type,date,hour,chat_intake_requests,chat_accepted,chat_completed,cancelled_requests,avg_time_diff_minutes,paid_chats_completed" {
		t.Errorf("AgentColumns = %v", AgentColumns)
	}
	if strings.Join(OverallColumns, ",") != "date,hour,chat_intake_overall,chat_accepted_overall,chat_completed_overall,astros_live,users_live" {
		t.Errorf("OverallColumns = %v", OverallColumns)
	}
}
