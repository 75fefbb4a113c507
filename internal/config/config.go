// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package config

import (
	"path/filepath"
)

// Config holds the batch run configuration loaded from defaults, an optional
// YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every optional setting
//  2. Config File: Optional YAML file (northstar.yaml, config.yaml or CONFIG_PATH)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.LoadWithKoanf("")
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	result, err := pipeline.Run(ctx, cfg, agents.NewRegistry())
type Config struct {
	Input     InputConfig     `koanf:"input"`
	Milestone MilestoneConfig `koanf:"milestone"`
	Funnel    FunnelConfig    `koanf:"funnel"`
	Output    OutputConfig    `koanf:"output"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// InputConfig locates the input tables.
//
// Environment Variables:
//   - NORTHSTAR_CHATS_PATH: chat log CSV
//   - NORTHSTAR_PROFILES_PATH: user profile CSV
//   - NORTHSTAR_EVENTS_PATH: event log CSV
//   - NORTHSTAR_AGENTS_PATH: agent reference CSV or YAML (optional)
//   - NORTHSTAR_PAYLOAD_COLUMN: JSON payload column (default: other_data)
//   - NORTHSTAR_STRICT_TIMESTAMPS: abort on an unparseable timestamp (default: false)
type InputConfig struct {
	ChatsPath     string `koanf:"chats_path"`
	ProfilesPath  string `koanf:"profiles_path"`
	EventsPath    string `koanf:"events_path"`
	AgentsPath    string `koanf:"agents_path"`
	PayloadColumn string `koanf:"payload_column"`

	// StrictTimestamps turns a rejected timestamp row into a fatal error
	StrictTimestamps bool `koanf:"strict_timestamps"`
}

// MilestoneConfig holds the daily milestone settings.
type MilestoneConfig struct {
	Enabled bool `koanf:"enabled"`

	// StartDate and EndDate bound the target days, inclusive.
	// Accepted formats: YYYY-MM-DD or DD-MM-YY.
	StartDate string `koanf:"start_date"`
	EndDate   string `koanf:"end_date"`

	// WindowDays is the look-back window length (default: 90)
	WindowDays int `koanf:"window_days"`

	// TargetCount is the milestone chat count (default: 4)
	TargetCount int `koanf:"target_count"`

	// Workers bounds concurrent day evaluations (0 = GOMAXPROCS)
	Workers int `koanf:"workers"`

	// Progress renders a progress bar on stderr
	Progress bool `koanf:"progress"`
}

// FunnelConfig holds the hourly funnel settings.
type FunnelConfig struct {
	Enabled bool `koanf:"enabled"`

	// UTCOffset is the fixed reporting offset for date/hour buckets (default: +05:30)
	UTCOffset string `koanf:"utc_offset"`
}

// OutputConfig names the output directory and files.
type OutputConfig struct {
	Dir           string `koanf:"dir"`
	MilestoneFile string `koanf:"milestone_file"`
	AgentFile     string `koanf:"agent_file"`
	OverallFile   string `koanf:"overall_file"`
	SummaryFile   string `koanf:"summary_file"`
}

// MilestonePath returns the daily milestone table path.
func (o OutputConfig) MilestonePath() string {
	return filepath.Join(o.Dir, o.MilestoneFile)
}

// AgentPath returns the per-agent hourly table path.
func (o OutputConfig) AgentPath() string {
	return filepath.Join(o.Dir, o.AgentFile)
}

// OverallPath returns the overall hourly table path.
func (o OutputConfig) OverallPath() string {
	return filepath.Join(o.Dir, o.OverallFile)
}

// SummaryPath returns the run summary path.
func (o OutputConfig) SummaryPath() string {
	return filepath.Join(o.Dir, o.SummaryFile)
}

// MetricsConfig holds Prometheus settings. Batch runs have no scrape
// endpoint, so metrics are dumped to a textfile when Textfile is set.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Threads     int    `koanf:"threads"`      // Number of DuckDB threads (0 = DuckDB default)
	MemoryLimit string `koanf:"memory_limit"` // DuckDB size string, e.g. 2GB
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}
