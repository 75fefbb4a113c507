// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package agents

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tomtom215/northstar/internal/ingest"
	"github.com/tomtom215/northstar/internal/models"
	"github.com/tomtom215/northstar/internal/report"
)

var _ report.AgentLookup = (*Registry)(nil)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestRegistry_Replace(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if r.Len() != 0 {
		t.Fatalf("new registry Len() = %d", r.Len())
	}

	n := r.Replace(context.Background(), []models.AgentMetadata{
		{AgentID: "a1", Name: "Asha", CompensationType: models.CompensationPayroll},
		{AgentID: "a2", Name: "Ravi", CompensationType: "CONTRACT"},
		{AgentID: "", Name: "Nobody", CompensationType: models.CompensationFreelance},
		{AgentID: "a3", Name: "", CompensationType: models.CompensationFreelance},
		{AgentID: "a1", Name: "Asha K", CompensationType: models.CompensationFreelance},
	})

	if n != 3 || r.Len() != 3 {
		t.Fatalf("Replace() = %d, Len() = %d, want 3", n, r.Len())
	}

	tests := []struct {
		id   string
		want models.AgentMetadata
	}{
		{"a1", models.AgentMetadata{AgentID: "a1", Name: "Asha K", CompensationType: models.CompensationFreelance}},
		{"a2", models.AgentMetadata{AgentID: "a2", Name: "Ravi"}},
		{"a3", models.AgentMetadata{AgentID: "a3", CompensationType: models.CompensationFreelance}},
	}
	for _, tt := range tests {
		got, ok := r.Lookup(tt.id)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%q) = %+v, %v, want %+v", tt.id, got, ok, tt.want)
		}
	}

	r.Replace(context.Background(), nil)
	if _, ok := r.Lookup("a1"); ok {
		t.Error("Replace should drop previous entries")
	}
}

func TestRegistry_ConcurrentLookup(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	entries := []models.AgentMetadata{{AgentID: "a1", Name: "Asha", CompensationType: models.CompensationPayroll}}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Replace(context.Background(), entries)
		}()
		go func() {
			defer wg.Done()
			r.Lookup("a1")
		}()
	}
	wg.Wait()

	if _, ok := r.Lookup("a1"); !ok {
		t.Error("a1 should be registered after concurrent replaces")
	}
}

func TestRegistry_LoadFile(t *testing.T) {
	ctx := context.Background()
	reader, err := ingest.NewReader(ctx, ingest.ReaderConfig{Threads: 1})
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	defer reader.Close()

	tests := []struct {
		name    string
		file    string
		content string
		want    int
	}{
		{
			name: "yaml",
			file: "agents.yaml",
			content: "agents:\n" +
				"  - id: a1\n    name: Asha\n    type: payroll\n" +
				"  - id: a2\n    name: Ravi\n    type: FREELANCE\n",
			want: 2,
		},
		{
			name:    "csv",
			file:    "agents.csv",
			content: "astro_id,name,type\na1,Asha,PAYROLL\na2,Bina,\na3,,FREELANCE\n",
			want:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			n, err := r.LoadFile(ctx, writeFile(t, tt.file, tt.content), reader)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if n != tt.want {
				t.Errorf("LoadFile() = %d, want %d", n, tt.want)
			}
			a, ok := r.Lookup("a1")
			if !ok || a.CompensationType != models.CompensationPayroll {
				t.Errorf("Lookup(a1) = %+v, %v", a, ok)
			}
			if tt.file == "agents.csv" {
				if b, ok := r.Lookup("a2"); !ok || b.Name != "Bina" || b.CompensationType != "" {
					t.Errorf("Lookup(a2) = %+v, %v, want name kept with empty type", b, ok)
				}
				if c, ok := r.Lookup("a3"); !ok || c.CompensationType != models.CompensationFreelance {
					t.Errorf("Lookup(a3) = %+v, %v", c, ok)
				}
			}
		})
	}
}

func TestRegistry_LoadFile_Missing(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	_, err := r.LoadFile(context.Background(), filepath.Join(t.TempDir(), "agents.yaml"), nil)
	if !errors.Is(err, ingest.ErrInputMissing) {
		t.Errorf("LoadFile() error = %v, want ErrInputMissing", err)
	}
}
