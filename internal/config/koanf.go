// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/northstar/internal/timebucket"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"northstar.yaml",
	"northstar.yml",
	"config.yaml",
	"config.yml",
	"/etc/northstar/config.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			ChatsPath:        "data/chats.csv",
			ProfilesPath:     "data/profiles.csv",
			EventsPath:       "data/events.csv",
			AgentsPath:       "", // Optional - agents report with empty name/type without it
			PayloadColumn:    "other_data",
			StrictTimestamps: false,
		},
		Milestone: MilestoneConfig{
			Enabled:     true,
			StartDate:   "", // Supplied per run (config, env or -start flag)
			EndDate:     "",
			WindowDays:  90,
			TargetCount: 4,
			Workers:     0, // 0 = use GOMAXPROCS
			Progress:    false,
		},
		Funnel: FunnelConfig{
			Enabled:   true,
			UTCOffset: timebucket.DefaultOffset,
		},
		Output: OutputConfig{
			Dir:           "output",
			MilestoneFile: "daily_milestone.csv",
			AgentFile:     "agent_hourly_funnel.csv",
			OverallFile:   "overall_hourly_funnel.csv",
			SummaryFile:   "run_summary.json",
		},
		Metrics: MetricsConfig{
			Textfile: "",
		},
		Database: DatabaseConfig{
			Threads:     0,
			MemoryLimit: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: configPath if set (it must exist), otherwise the first file
//     found via CONFIG_PATH or DefaultConfigPaths (optional)
//  3. Environment Variables: Override any mapped setting
//
// The result is validated before it is returned.
func LoadWithKoanf(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configPath, err)
		}
	} else {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// NORTHSTAR_CHATS_PATH -> input.chats_path
	// LOG_LEVEL -> logging.level
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Input mappings
	"northstar_chats_path":        "input.chats_path",
	"northstar_profiles_path":     "input.profiles_path",
	"northstar_events_path":       "input.events_path",
	"northstar_agents_path":       "input.agents_path",
	"northstar_payload_column":    "input.payload_column",
	"northstar_strict_timestamps": "input.strict_timestamps",

	// Milestone mappings
	"northstar_milestone_enabled": "milestone.enabled",
	"northstar_start_date":        "milestone.start_date",
	"northstar_end_date":          "milestone.end_date",
	"northstar_window_days":       "milestone.window_days",
	"northstar_target_count":      "milestone.target_count",
	"northstar_workers":           "milestone.workers",
	"northstar_progress":          "milestone.progress",

	// Funnel mappings
	"northstar_funnel_enabled": "funnel.enabled",
	"northstar_utc_offset":     "funnel.utc_offset",

	// Output mappings
	"northstar_output_dir": "output.dir",

	// Metrics mappings
	"northstar_metrics_textfile": "metrics.textfile",

	// Database mappings
	"duckdb_threads":      "database.threads",
	"duckdb_memory_limit": "database.memory_limit",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - NORTHSTAR_CHATS_PATH -> input.chats_path
//   - NORTHSTAR_UTC_OFFSET -> funnel.utc_offset
//   - DUCKDB_THREADS -> database.threads
//   - LOG_LEVEL -> logging.level
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
