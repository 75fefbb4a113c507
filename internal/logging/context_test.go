// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestGenerateRunID(t *testing.T) {
	id1 := GenerateRunID()
	id2 := GenerateRunID()

	if len(id1) != 36 {
		t.Errorf("expected 36-character run ID, got %d: %s", len(id1), id1)
	}
	if id1 == id2 {
		t.Error("expected unique run IDs")
	}
}

func TestRunIDContext(t *testing.T) {
	ctx := context.Background()

	if got := RunIDFromContext(ctx); got != "" {
		t.Errorf("expected empty run ID, got %q", got)
	}

	ctx = ContextWithRunID(ctx, "run-123")
	if got := RunIDFromContext(ctx); got != "run-123" {
		t.Errorf("RunIDFromContext() = %q, want run-123", got)
	}
}

func TestStageContext(t *testing.T) {
	ctx := ContextWithStage(context.Background(), "funnel")
	if got := StageFromContext(ctx); got != "funnel" {
		t.Errorf("StageFromContext() = %q, want funnel", got)
	}
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer

	original := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(original)

	ctx := ContextWithRunID(context.Background(), "run-abc")
	ctx = ContextWithStage(ctx, "milestone")
	Ctx(ctx).Info().Msg("stage started")

	output := buf.String()
	if !strings.Contains(output, `"run_id":"run-abc"`) {
		t.Errorf("expected run_id field, got: %s", output)
	}
	if !strings.Contains(output, `"stage":"milestone"`) {
		t.Errorf("expected stage field, got: %s", output)
	}
}

func TestCtx_NoValues(t *testing.T) {
	var buf bytes.Buffer

	original := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(original)

	Ctx(context.Background()).Info().Msg("plain")

	output := buf.String()
	if strings.Contains(output, "run_id") || strings.Contains(output, "stage") {
		t.Errorf("expected no context fields, got: %s", output)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	original := Logger()
	SetLogger(NewTestLogger(&buf))
	defer SetLogger(original)

	ctx := ContextWithRunID(context.Background(), "run-7")
	WithComponent(ctx, "ingest").Info().Msg("component message")

	if !strings.Contains(buf.String(), `"component":"ingest"`) || !strings.Contains(buf.String(), `"run_id":"run-7"`) {
		t.Errorf("expected component field, got: %s", buf.String())
	}
}
