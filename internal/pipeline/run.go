// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/northstar/internal/agents"
	"github.com/tomtom215/northstar/internal/config"
	"github.com/tomtom215/northstar/internal/export"
	"github.com/tomtom215/northstar/internal/ingest"
	"github.com/tomtom215/northstar/internal/logging"
	"github.com/tomtom215/northstar/internal/metrics"
)

// Stage names used in logs, metrics and the summary.
const (
	StagePreflight = "preflight"
	StageMilestone = "milestone"
	StageFunnel    = "funnel"
	StageSummary   = "summary"
)

// Output table names used in the summary and the output-rows metric.
const (
	OutputMilestone = "daily_milestone"
	OutputAgents    = "agent_hourly_funnel"
	OutputOverall   = "overall_hourly_funnel"
	OutputSummary   = "run_summary"
)

// Run executes one batch: preflight checks, the enabled stages, then the run
// summary and the optional metrics textfile. registry receives the agent
// reference data; a nil registry gets a fresh one.
//
// The run ID is taken from ctx (logging.ContextWithRunID) or generated.
func Run(ctx context.Context, cfg *config.Config, registry *agents.Registry) (*Summary, error) {
	runID := logging.RunIDFromContext(ctx)
	if runID == "" {
		runID = logging.GenerateRunID()
		ctx = logging.ContextWithRunID(ctx, runID)
	}
	if registry == nil {
		registry = agents.NewRegistry()
	}

	summary := &Summary{
		RunID:     runID,
		StartedAt: time.Now().UTC(),
		Outputs:   make(map[string]string),
	}

	logger := logging.Ctx(ctx)
	logger.Info().
		Bool("milestone", cfg.Milestone.Enabled).
		Bool("funnel", cfg.Funnel.Enabled).
		Str("output_dir", cfg.Output.Dir).
		Msg("Starting batch run")

	var plan *runPlan
	if err := runStage(ctx, summary, StagePreflight, func(ctx context.Context) error {
		p, err := preflight(cfg)
		plan = p
		return err
	}); err != nil {
		return nil, err
	}

	reader, err := ingest.NewReader(ctx, ingest.ReaderConfig{
		Threads:     cfg.Database.Threads,
		MemoryLimit: cfg.Database.MemoryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open reader: %w", err)
	}
	defer reader.Close()

	if cfg.Milestone.Enabled {
		if err := runStage(ctx, summary, StageMilestone, func(ctx context.Context) error {
			return runMilestone(ctx, cfg, plan, reader, summary)
		}); err != nil {
			return nil, err
		}
	}

	if cfg.Funnel.Enabled {
		if err := runStage(ctx, summary, StageFunnel, func(ctx context.Context) error {
			return runFunnel(ctx, cfg, plan, reader, registry, summary)
		}); err != nil {
			return nil, err
		}
	}

	if err := runStage(ctx, summary, StageSummary, func(ctx context.Context) error {
		return finish(ctx, cfg, summary)
	}); err != nil {
		return nil, err
	}

	logger.Info().
		Dur("duration", summary.Duration()).
		Int("rejected_rows", summary.RejectedRows()).
		Msg("Batch run completed")
	return summary, nil
}

// runStage times fn, records the stage metric and appends the stage to the summary.
func runStage(ctx context.Context, summary *Summary, name string, fn func(context.Context) error) error {
	ctx = logging.ContextWithStage(ctx, name)
	logger := logging.Ctx(ctx)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s stage: %w", name, err)
	}

	logger.Debug().Msg("Stage started")
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)

	metrics.RecordStage(name, elapsed, err)
	summary.Stages = append(summary.Stages, StageTiming{Name: name, DurationSeconds: elapsed.Seconds()})

	if err != nil {
		logger.Error().Err(err).Dur("duration", elapsed).Msg("Stage failed")
		return fmt.Errorf("%s stage: %w", name, err)
	}
	logger.Info().Dur("duration", elapsed).Msg("Stage completed")
	return nil
}

// finish writes the run summary and the metrics textfile.
func finish(ctx context.Context, cfg *config.Config, summary *Summary) error {
	summary.FinishedAt = time.Now().UTC()
	summary.Outputs[OutputSummary] = cfg.Output.SummaryPath()

	if err := export.WriteSummary(cfg.Output.SummaryPath(), summary); err != nil {
		return err
	}
	metrics.RecordRunSuccess(summary.FinishedAt)

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
		logging.Ctx(ctx).Debug().Str("path", cfg.Metrics.Textfile).Msg("Metrics textfile written")
	}
	return nil
}

// writeTable exports one report table and records its row count.
func writeTable(ctx context.Context, summary *Summary, name, path string, header []string, rows [][]string) error {
	if err := export.WriteCSV(path, header, rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	metrics.SetOutputRows(name, len(rows))
	summary.Outputs[name] = path

	logging.Ctx(ctx).Info().
		Str("table", name).
		Str("path", path).
		Int("rows", len(rows)).
		Msg("Report table written")
	return nil
}
