// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context keys for logging.
type contextKey string

const (
	// runIDKey is the context key for the batch run ID.
	runIDKey contextKey = "run_id"

	// stageKey is the context key for the pipeline stage name.
	stageKey contextKey = "stage"
)

// GenerateRunID creates a new unique run ID.
func GenerateRunID() string {
	return uuid.New().String()
}

// ContextWithRunID returns a new context carrying the batch run ID.
//
//	ctx = logging.ContextWithRunID(ctx, logging.GenerateRunID())
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext retrieves the run ID from context.
// Returns empty string if not present.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithStage returns a new context naming the pipeline stage.
func ContextWithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext retrieves the stage name from context.
func StageFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(stageKey).(string); ok {
		return s
	}
	return ""
}

// Ctx returns a logger with context values (run_id, stage) automatically added.
//
//	logging.Ctx(ctx).Info().Int("rows", n).Msg("Loaded chats")
//	// Output: {"level":"info","run_id":"...","stage":"milestone","rows":42,"message":"Loaded chats"}
func Ctx(ctx context.Context) *zerolog.Logger {
	logCtx := Logger().With()

	if runID := RunIDFromContext(ctx); runID != "" {
		logCtx = logCtx.Str("run_id", runID)
	}
	if stage := StageFromContext(ctx); stage != "" {
		logCtx = logCtx.Str("stage", stage)
	}

	logger := logCtx.Logger()
	return &logger
}

// WithComponent is Ctx with an added component field, for packages whose
// lines should be filterable by origin.
//
//	logging.WithComponent(ctx, "ingest").Info().Str("table", name).Msg("Table read")
func WithComponent(ctx context.Context, component string) *zerolog.Logger {
	logger := Ctx(ctx).With().Str("component", component).Logger()
	return &logger
}
