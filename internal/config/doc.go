// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

/*
Package config provides configuration management for Northstar batch runs.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The command line may override the run
dates and output directory after loading.

# Configuration File

The file is taken from CONFIG_PATH or the first of DefaultConfigPaths that
exists. Example:

	input:
	  chats_path: data/chats.csv
	  profiles_path: data/profiles.csv
	  events_path: data/events.csv
	  agents_path: data/agents.yaml
	milestone:
	  start_date: "2024-01-01"
	  end_date: "2024-01-31"
	  window_days: 90
	  target_count: 4
	funnel:
	  utc_offset: "+05:30"
	output:
	  dir: output
	metrics:
	  textfile: /var/lib/node_exporter/northstar.prom

# Environment Variables

Input:
  - NORTHSTAR_CHATS_PATH, NORTHSTAR_PROFILES_PATH, NORTHSTAR_EVENTS_PATH
  - NORTHSTAR_AGENTS_PATH: optional agent reference data
  - NORTHSTAR_PAYLOAD_COLUMN: JSON payload column (default: other_data)
  - NORTHSTAR_STRICT_TIMESTAMPS: abort on unparseable timestamps

Milestone:
  - NORTHSTAR_MILESTONE_ENABLED (default: true)
  - NORTHSTAR_START_DATE, NORTHSTAR_END_DATE: YYYY-MM-DD or DD-MM-YY
  - NORTHSTAR_WINDOW_DAYS (default: 90), NORTHSTAR_TARGET_COUNT (default: 4)
  - NORTHSTAR_WORKERS (default: 0 = GOMAXPROCS), NORTHSTAR_PROGRESS

Funnel:
  - NORTHSTAR_FUNNEL_ENABLED (default: true)
  - NORTHSTAR_UTC_OFFSET (default: +05:30)

Output and observability:
  - NORTHSTAR_OUTPUT_DIR (default: output)
  - NORTHSTAR_METRICS_TEXTFILE: Prometheus textfile path (optional)
  - DUCKDB_THREADS, DUCKDB_MEMORY_LIMIT
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Load validates every section and fails with a message naming the offending
setting, for example "funnel.utc_offset is invalid".
*/
package config
