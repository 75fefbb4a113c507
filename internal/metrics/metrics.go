// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingest Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "northstar_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB input reads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "northstar_duckdb_query_errors_total",
			Help: "Total number of DuckDB read errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	InputRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "northstar_input_rows_total",
			Help: "Total number of input rows read per table",
		},
		[]string{"table"},
	)

	RejectedRows = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "northstar_rows_rejected_total",
			Help: "Total number of input rows rejected during loading",
		},
		[]string{"table", "column"},
	)

	// Payload Normalization Metrics
	PayloadRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "northstar_payload_records_total",
			Help: "Event payloads by flattening outcome",
		},
		[]string{"outcome"}, // "parsed", "absent", "invalid"
	)

	// Pipeline Metrics
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "northstar_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		},
		[]string{"stage"},
	)

	StageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "northstar_stage_errors_total",
			Help: "Total number of failed pipeline stages",
		},
		[]string{"stage"},
	)

	OutputRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "northstar_output_rows",
			Help: "Number of rows written to each output table in the last run",
		},
		[]string{"table"},
	)

	LastRunSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "northstar_last_run_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful batch run",
		},
	)

	// Milestone Metrics
	MilestoneDays = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "northstar_milestone_days_total",
			Help: "Total number of target days evaluated by the milestone engine",
		},
	)

	MilestoneUsers = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "northstar_milestone_users_total",
			Help: "Total number of user-days reaching the chat milestone",
		},
	)

	// Funnel Metrics
	FunnelStageRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "northstar_funnel_stage_rows",
			Help: "Number of (key, date, hour) rows produced by each funnel stage",
		},
		[]string{"metric"},
	)
)

// RecordDBQuery records a DuckDB read.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordInputRows adds n rows read from table.
func RecordInputRows(table string, n int) {
	InputRows.WithLabelValues(table).Add(float64(n))
}

// RecordRejectedRow counts one rejected input row.
func RecordRejectedRow(table, column string) {
	RejectedRows.WithLabelValues(table, column).Inc()
}

// RecordPayloadOutcomes adds the flattening outcome counts of one batch.
func RecordPayloadOutcomes(parsed, absent, invalid int) {
	PayloadRecords.WithLabelValues("parsed").Add(float64(parsed))
	PayloadRecords.WithLabelValues("absent").Add(float64(absent))
	PayloadRecords.WithLabelValues("invalid").Add(float64(invalid))
}

// RecordStage records a pipeline stage duration and its failure, if any.
func RecordStage(stage string, duration time.Duration, err error) {
	StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
	if err != nil {
		StageErrors.WithLabelValues(stage).Inc()
	}
}

// SetOutputRows records the row count written to an output table.
func SetOutputRows(table string, n int) {
	OutputRows.WithLabelValues(table).Set(float64(n))
}

// RecordMilestoneDay records one evaluated target day.
func RecordMilestoneDay(users int) {
	MilestoneDays.Inc()
	MilestoneUsers.Add(float64(users))
}

// SetFunnelStageRows records the row count of a funnel stage table.
func SetFunnelStageRows(metric string, n int) {
	FunnelStageRows.WithLabelValues(metric).Set(float64(n))
}

// RecordRunSuccess marks the batch run as successful.
func RecordRunSuccess(at time.Time) {
	LastRunSuccess.Set(float64(at.Unix()))
}

// WriteTextfile writes every registered metric to path in the Prometheus text
// format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
