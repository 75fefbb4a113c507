// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

// Package logging provides centralized zerolog-based structured logging for Northstar.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output format for batch runs (machine-parseable)
//   - Console output format for interactive runs
//   - Context-aware logging with run ID and stage propagation
//
// # Quick Start
//
//	import "github.com/tomtom215/northstar/internal/logging"
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	ctx = logging.ContextWithRunID(ctx, logging.GenerateRunID())
//	logging.Ctx(ctx).Info().Int("days", n).Msg("Milestone complete")
//
// # Configuration
//
// Configured from internal/config (LOG_LEVEL, LOG_FORMAT, LOG_CALLER).
// Logs go to stderr so the CSV outputs and summary stay clean.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
