// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

// Package main is the entry point for the Northstar batch job.
//
// Northstar computes two product-analytics reports from consultation platform
// exports: a daily count of users reaching their fourth qualifying chat within
// a 90-day cohort window, and an hourly conversion funnel per agent and overall.
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Command-line flags (-start, -end, -out)
//   - Environment variables (NORTHSTAR_*, LOG_*, DUCKDB_*)
//   - Config file (-config, CONFIG_PATH, northstar.yaml or config.yaml)
//   - Built-in defaults
//
// # Example Usage
//
//	northstar -config northstar.yaml -start 2024-01-01 -end 2024-01-31 -out reports
//
// Funnel only, with console logs:
//
//	export NORTHSTAR_MILESTONE_ENABLED=false
//	export LOG_FORMAT=console
//	northstar -out reports
//
// # Exit Status
//
// The process exits non-zero when configuration is invalid, an input is
// missing or any stage fails. SIGINT and SIGTERM cancel the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/northstar/internal/agents"
	"github.com/tomtom215/northstar/internal/config"
	"github.com/tomtom215/northstar/internal/logging"
	"github.com/tomtom215/northstar/internal/pipeline"
)

// options are the command-line overrides.
type options struct {
	configPath string
	startDate  string
	endDate    string
	outDir     string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("northstar", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.startDate, "start", "", "first milestone date (YYYY-MM-DD or DD-MM-YY)")
	fs.StringVar(&opts.endDate, "end", "", "last milestone date, inclusive")
	fs.StringVar(&opts.outDir, "out", "", "output directory")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// loadConfig loads the layered configuration and applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.LoadWithKoanf(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.startDate != "" {
		cfg.Milestone.StartDate = opts.startDate
	}
	if opts.endDate != "" {
		cfg.Milestone.EndDate = opts.endDate
	}
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command-line override: %w", err)
	}
	return cfg, nil
}

// loggingConfig starts from the logging defaults and applies the configured
// level, format and caller settings.
func loggingConfig(cfg *config.Config) logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Logging.Level
	lc.Format = cfg.Logging.Format
	lc.Caller = cfg.Logging.Caller
	return lc
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(loggingConfig(cfg))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runID := logging.GenerateRunID()
	ctx = logging.ContextWithRunID(ctx, runID)

	logging.Info().
		Str("run_id", runID).
		Str("start_date", cfg.Milestone.StartDate).
		Str("end_date", cfg.Milestone.EndDate).
		Str("output_dir", cfg.Output.Dir).
		Msg("Configuration loaded")

	summary, err := pipeline.Run(ctx, cfg, agents.NewRegistry())
	if err != nil {
		stop()
		logging.Fatal().Err(err).Str("run_id", runID).Msg("Batch run failed")
	}

	logging.Info().
		Str("run_id", runID).
		Str("summary", cfg.Output.SummaryPath()).
		Int("rejected_rows", summary.RejectedRows()).
		Msg("Northstar finished")
}
