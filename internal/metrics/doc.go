// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

/*
Package metrics provides Prometheus metrics collection for batch runs.

# Overview

The package provides metrics for:
  - DuckDB input reads (duration, errors)
  - Input rows read and rejected per table
  - JSON payload flattening outcomes
  - Pipeline stage durations and failures
  - Milestone days evaluated and users found
  - Funnel stage and output table sizes

# Export

A batch run has no scrape endpoint. When metrics.textfile is configured the
pipeline calls WriteTextfile at the end of the run, producing a file for the
node_exporter textfile collector:

	northstar_stage_duration_seconds_bucket{stage="milestone",le="1"} 1
	northstar_output_rows{table="agent_hourly"} 1520

# Usage

	start := time.Now()
	err := runStage()
	metrics.RecordStage("funnel", time.Since(start), err)

All collectors are registered on the default registry via promauto.
*/
package metrics
