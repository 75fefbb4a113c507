// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/northstar/internal/timebucket"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if !c.Milestone.Enabled && !c.Funnel.Enabled {
		return fmt.Errorf("at least one of milestone.enabled or funnel.enabled must be true")
	}

	if err := c.validateInput(); err != nil {
		return err
	}

	if err := c.validateMilestone(); err != nil {
		return err
	}

	if err := c.validateFunnel(); err != nil {
		return err
	}

	if err := c.validateOutput(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateInput checks that every enabled stage has its input paths
func (c *Config) validateInput() error {
	if c.Milestone.Enabled {
		if strings.TrimSpace(c.Input.ChatsPath) == "" {
			return fmt.Errorf("input.chats_path is required when milestone.enabled=true")
		}
		if strings.TrimSpace(c.Input.ProfilesPath) == "" {
			return fmt.Errorf("input.profiles_path is required when milestone.enabled=true")
		}
	}
	if c.Funnel.Enabled {
		if strings.TrimSpace(c.Input.EventsPath) == "" {
			return fmt.Errorf("input.events_path is required when funnel.enabled=true")
		}
		if strings.TrimSpace(c.Input.PayloadColumn) == "" {
			return fmt.Errorf("input.payload_column must not be empty")
		}
	}
	return nil
}

// validateMilestone validates the milestone settings (only if enabled).
// Empty dates are allowed here; they may still arrive through CLI flags and
// are required by the run preflight.
func (c *Config) validateMilestone() error {
	if !c.Milestone.Enabled {
		return nil
	}

	if err := validateDate("milestone.start_date", c.Milestone.StartDate); err != nil {
		return err
	}
	if err := validateDate("milestone.end_date", c.Milestone.EndDate); err != nil {
		return err
	}
	if c.Milestone.WindowDays < 1 {
		return fmt.Errorf("milestone.window_days must be at least 1, got %d", c.Milestone.WindowDays)
	}
	if c.Milestone.TargetCount < 2 {
		return fmt.Errorf("milestone.target_count must be at least 2, got %d", c.Milestone.TargetCount)
	}
	if c.Milestone.Workers < 0 {
		return fmt.Errorf("milestone.workers must not be negative, got %d", c.Milestone.Workers)
	}
	return nil
}

func validateDate(setting, value string) error {
	if value == "" {
		return nil
	}
	if _, err := timebucket.ParseDate(value); err != nil {
		return fmt.Errorf("%s is invalid: %w", setting, err)
	}
	return nil
}

// validateFunnel validates the funnel settings (only if enabled)
func (c *Config) validateFunnel() error {
	if !c.Funnel.Enabled {
		return nil
	}
	if _, err := timebucket.ParseOffset(c.Funnel.UTCOffset); err != nil {
		return fmt.Errorf("funnel.utc_offset is invalid: %w", err)
	}
	return nil
}

// validateOutput checks the output directory and file names
func (c *Config) validateOutput() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("output.dir is required")
	}

	files := map[string]string{
		"output.milestone_file": c.Output.MilestoneFile,
		"output.agent_file":     c.Output.AgentFile,
		"output.overall_file":   c.Output.OverallFile,
		"output.summary_file":   c.Output.SummaryFile,
	}
	for setting, name := range files {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%s must not be empty", setting)
		}
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%s must be a file name, not a path: %q", setting, name)
		}
	}
	return nil
}

// validateDatabase validates DuckDB settings
func (c *Config) validateDatabase() error {
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must not be negative, got %d", c.Database.Threads)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
