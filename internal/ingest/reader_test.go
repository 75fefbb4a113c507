// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/northstar/internal/models"
)

// setupReader opens a reader on an in-memory DuckDB. Caller need not close it.
func setupReader(t *testing.T) (*Reader, context.Context) {
	t.Helper()

	ctx := context.Background()
	r, err := NewReader(ctx, ReaderConfig{Threads: 1})
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r, ctx
}

// writeCSV writes content to name inside a temp dir and returns the path.
func writeCSV(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestCheckInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "x.csv")
	if err := os.WriteFile(file, []byte("a\n1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"existing file", file, false},
		{"empty path", "", true},
		{"missing file", filepath.Join(dir, "nope.csv"), true},
		{"directory", dir, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckInput("chats", tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckInput() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInputMissing) {
				t.Errorf("error %v should wrap ErrInputMissing", err)
			}
		})
	}
}

func TestReadTable(t *testing.T) {
	r, ctx := setupReader(t)
	path := writeCSV(t, "events.csv",
		"event_name,event_time,user_id,other_data\n"+
			"open_page,2024-01-01 10:00:00,u1,\n"+
			"accept_chat,2024-01-01 11:00:00,u2,\"{\"\"clientId\"\":\"\"c1\"\"}\"\n")

	table, err := r.ReadTable(ctx, TableEvents, path, EventColumns)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}
	if got := table.String(0, "user_id"); got != "u1" {
		t.Errorf("row 0 user_id = %q, want u1", got)
	}
	if _, ok := table.Value(0, "other_data"); ok {
		t.Error("empty cell should be absent")
	}
	if got := table.String(1, "other_data"); got != `{"clientId":"c1"}` {
		t.Errorf("row 1 other_data = %q", got)
	}
	if _, ok := table.Value(0, "no_such_column"); ok {
		t.Error("unknown column should be absent")
	}

	records := table.Records()
	if records[0].Row != 1 || records[1].Row != 2 {
		t.Errorf("record rows = %d, %d, want 1, 2", records[0].Row, records[1].Row)
	}
	if _, ok := records[0].Fields["other_data"]; ok {
		t.Error("empty cells should not appear in record fields")
	}
	if records[1].Fields["event_name"] != models.EventAcceptChat {
		t.Errorf("record fields = %v", records[1].Fields)
	}
}

func TestReadTable_MissingColumn(t *testing.T) {
	r, ctx := setupReader(t)
	path := writeCSV(t, "chats.csv", "userId,createdAt\nu1,2024-01-01\n")

	_, err := r.ReadTable(ctx, TableChats, path, ChatColumns)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("ReadTable() error = %v, want ErrMissingColumn", err)
	}
}

func TestReadTable_MissingFile(t *testing.T) {
	r, ctx := setupReader(t)

	_, err := r.ReadTable(ctx, TableChats, filepath.Join(t.TempDir(), "absent.csv"), ChatColumns)
	if !errors.Is(err, ErrInputMissing) {
		t.Fatalf("ReadTable() error = %v, want ErrInputMissing", err)
	}
}

func TestLoadChats(t *testing.T) {
	r, ctx := setupReader(t)
	path := writeCSV(t, "chats.csv",
		"userId,createdAt,hasFreeMins,endReason\n"+
			"u1,2024-01-01T10:00:00Z,0,COMPLETED\n"+
			"u2,not-a-time,0,COMPLETED\n"+
			",2024-01-01T10:00:00Z,0,COMPLETED\n"+
			"u3,2024-01-02 08:30:00,1,NOT_STARTED\n")

	chats, stats, err := r.LoadChats(ctx, path, Policy{})
	if err != nil {
		t.Fatalf("LoadChats() error = %v", err)
	}

	if stats.Read != 4 || stats.Accepted != 2 || stats.Rejected != 2 {
		t.Errorf("stats = read %d accepted %d rejected %d, want 4/2/2",
			stats.Read, stats.Accepted, stats.Rejected)
	}
	if len(stats.RowErrors) != 2 || stats.RowErrors[0].Row != 2 || stats.RowErrors[0].Column != ColChatCreatedAt {
		t.Errorf("row errors = %+v", stats.RowErrors)
	}
	if stats.RowErrors[1].Column != ColChatUserID {
		t.Errorf("second rejection column = %q, want %q", stats.RowErrors[1].Column, ColChatUserID)
	}

	want := []models.ChatRecord{
		{
			UserID:      "u1",
			CreatedAt:   time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			HasFreeMins: models.Flag{Value: 0, Valid: true},
			EndReason:   "COMPLETED",
		},
		{
			UserID:      "u3",
			CreatedAt:   time.Date(2024, 1, 2, 8, 30, 0, 0, time.UTC),
			HasFreeMins: models.Flag{Value: 1, Valid: true},
			EndReason:   models.EndReasonNotStarted,
		},
	}
	if len(chats) != len(want) {
		t.Fatalf("got %d chats, want %d", len(chats), len(want))
	}
	for i := range want {
		if chats[i] != want[i] {
			t.Errorf("chat %d = %+v, want %+v", i, chats[i], want[i])
		}
	}
}

func TestLoadChats_Strict(t *testing.T) {
	r, ctx := setupReader(t)
	path := writeCSV(t, "chats.csv",
		"userId,createdAt,hasFreeMins,endReason\n"+
			"u1,garbage,0,COMPLETED\n")

	_, _, err := r.LoadChats(ctx, path, Policy{StrictTimestamps: true})
	if !errors.Is(err, ErrRejectedRow) {
		t.Fatalf("LoadChats(strict) error = %v, want ErrRejectedRow", err)
	}
	var rowErr models.RowError
	if !errors.As(err, &rowErr) || rowErr.Row != 1 {
		t.Errorf("error should carry the row error, got %v", err)
	}
}

func TestLoadProfiles(t *testing.T) {
	r, ctx := setupReader(t)
	path := writeCSV(t, "profiles.csv",
		"_id,createdAt,name\n"+
			"u1,2023-12-01T00:00:00Z,Ann\n"+
			"u2,,Bob\n")

	profiles, stats, err := r.LoadProfiles(ctx, path, Policy{})
	if err != nil {
		t.Fatalf("LoadProfiles() error = %v", err)
	}
	if len(profiles) != 1 || profiles[0].UserID != "u1" {
		t.Errorf("profiles = %+v", profiles)
	}
	if stats.Rejected != 1 {
		t.Errorf("rejected = %d, want 1", stats.Rejected)
	}
}

func TestLoadAgents(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []models.AgentMetadata
		wantErr error
	}{
		{
			name:    "underscore id",
			content: "_id,name,type\na1,Asha,payroll\n,Nobody,FREELANCE\n",
			want:    []models.AgentMetadata{{AgentID: "a1", Name: "Asha", CompensationType: models.CompensationPayroll}},
		},
		{
			name:    "astro_id column",
			content: "astro_id,name,type\na2,Ravi,FREELANCE\n",
			want:    []models.AgentMetadata{{AgentID: "a2", Name: "Ravi", CompensationType: models.CompensationFreelance}},
		},
		{
			name:    "no id column",
			content: "name,type\nAsha,PAYROLL\n",
			wantErr: ErrMissingColumn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ctx := setupReader(t)
			path := writeCSV(t, "agents.csv", tt.content)

			got, _, err := r.LoadAgents(ctx, path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadAgents() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadAgents() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d agents, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("agent %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLoadStats(t *testing.T) {
	t.Parallel()

	start := time.Now().Add(-2 * time.Second)
	s := &LoadStats{Read: 100, StartTime: start, EndTime: start.Add(2 * time.Second)}

	if s.Duration() != 2*time.Second {
		t.Errorf("Duration() = %v, want 2s", s.Duration())
	}
	if s.RowsPerSecond() != 50 {
		t.Errorf("RowsPerSecond() = %v, want 50", s.RowsPerSecond())
	}
}

func TestQuoteLiteral(t *testing.T) {
	t.Parallel()

	if got := quoteLiteral("/tmp/o'brien.csv"); got != "'/tmp/o''brien.csv'" {
		t.Errorf("quoteLiteral() = %s", got)
	}
}
