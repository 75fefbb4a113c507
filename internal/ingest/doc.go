// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

// Package ingest loads the batch input tables.
//
// Input files are CSV exports with a header row. They are read through an
// in-memory DuckDB connection using read_csv with all_varchar, so no column
// type is guessed: every value arrives as text and is converted here.
//
// Loading a table:
//
//	reader, err := ingest.NewReader(ctx, ingest.ReaderConfig{Threads: 4})
//	if err != nil {
//	    return err
//	}
//	defer reader.Close()
//
//	chats, stats, err := reader.LoadChats(ctx, "data/chats.csv", ingest.Policy{})
//
// A missing file fails with ErrInputMissing and a missing required column with
// ErrMissingColumn, both before any computation runs. Rows that cannot be
// converted are rejected: each becomes a models.RowError in LoadStats, a
// rejected-row metric and a warning log line. With Policy.StrictTimestamps an
// unparseable timestamp aborts the load with ErrRejectedRow instead.
package ingest
