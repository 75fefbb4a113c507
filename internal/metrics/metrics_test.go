// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordDBQuery tests DuckDB read metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		err       error
		wantErrs  float64
	}{
		{"successful read", "read_csv", "chats_test_ok", nil, 0},
		{"failed read", "read_csv", "chats_test_fail", errors.New("file not found"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery(tt.operation, tt.table, 10*time.Millisecond, tt.err)

			if tt.err != nil {
				got := testutil.ToFloat64(DBQueryErrors.WithLabelValues(tt.operation, tt.table, tt.err.Error()))
				if got != tt.wantErrs {
					t.Errorf("errors counter = %v, want %v", got, tt.wantErrs)
				}
			}
		})
	}
}

func TestRecordDBQuery_TruncatesErrorLabel(t *testing.T) {
	long := errors.New(strings.Repeat("x", 80))
	RecordDBQuery("read_csv", "truncate_test", time.Millisecond, long)

	got := testutil.ToFloat64(DBQueryErrors.WithLabelValues("read_csv", "truncate_test", strings.Repeat("x", 50)))
	if got != 1 {
		t.Errorf("truncated error counter = %v, want 1", got)
	}
}

func TestRecordInputAndRejectedRows(t *testing.T) {
	before := testutil.ToFloat64(InputRows.WithLabelValues("rows_test"))
	RecordInputRows("rows_test", 5)
	if got := testutil.ToFloat64(InputRows.WithLabelValues("rows_test")) - before; got != 5 {
		t.Errorf("input rows delta = %v, want 5", got)
	}

	beforeRejected := testutil.ToFloat64(RejectedRows.WithLabelValues("rows_test", "createdAt"))
	RecordRejectedRow("rows_test", "createdAt")
	RecordRejectedRow("rows_test", "createdAt")
	if got := testutil.ToFloat64(RejectedRows.WithLabelValues("rows_test", "createdAt")) - beforeRejected; got != 2 {
		t.Errorf("rejected rows delta = %v, want 2", got)
	}
}

func TestRecordPayloadOutcomes(t *testing.T) {
	parsed := testutil.ToFloat64(PayloadRecords.WithLabelValues("parsed"))
	invalid := testutil.ToFloat64(PayloadRecords.WithLabelValues("invalid"))

	RecordPayloadOutcomes(3, 1, 2)

	if got := testutil.ToFloat64(PayloadRecords.WithLabelValues("parsed")) - parsed; got != 3 {
		t.Errorf("parsed delta = %v, want 3", got)
	}
	if got := testutil.ToFloat64(PayloadRecords.WithLabelValues("invalid")) - invalid; got != 2 {
		t.Errorf("invalid delta = %v, want 2", got)
	}
}

func TestRecordStage(t *testing.T) {
	before := testutil.ToFloat64(StageErrors.WithLabelValues("stage_test"))

	RecordStage("stage_test", 2*time.Second, nil)
	RecordStage("stage_test", time.Second, errors.New("boom"))

	if got := testutil.ToFloat64(StageErrors.WithLabelValues("stage_test")) - before; got != 1 {
		t.Errorf("stage errors delta = %v, want 1", got)
	}
}

func TestGauges(t *testing.T) {
	SetOutputRows("gauge_test", 42)
	if got := testutil.ToFloat64(OutputRows.WithLabelValues("gauge_test")); got != 42 {
		t.Errorf("output rows = %v, want 42", got)
	}

	SetFunnelStageRows("gauge_metric", 7)
	if got := testutil.ToFloat64(FunnelStageRows.WithLabelValues("gauge_metric")); got != 7 {
		t.Errorf("funnel stage rows = %v, want 7", got)
	}

	at := time.Unix(1700000000, 0)
	RecordRunSuccess(at)
	if got := testutil.ToFloat64(LastRunSuccess); got != 1700000000 {
		t.Errorf("last run success = %v", got)
	}
}

func TestRecordMilestoneDay(t *testing.T) {
	days := testutil.ToFloat64(MilestoneDays)
	users := testutil.ToFloat64(MilestoneUsers)

	RecordMilestoneDay(3)
	RecordMilestoneDay(0)

	if got := testutil.ToFloat64(MilestoneDays) - days; got != 2 {
		t.Errorf("days delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(MilestoneUsers) - users; got != 3 {
		t.Errorf("users delta = %v, want 3", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	SetOutputRows("textfile_test", 1)

	path := filepath.Join(t.TempDir(), "northstar.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `northstar_output_rows{table="textfile_test"} 1`) {
		t.Errorf("textfile missing output rows metric:\n%s", data)
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	if err == nil {
		t.Error("expected error for missing directory")
	}
}
