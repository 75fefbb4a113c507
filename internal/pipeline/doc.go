// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

/*
Package pipeline runs one Northstar batch end to end.

# Stages

A run executes these stages in order, each timed into the stage-duration
histogram and logged with the run ID:

 1. preflight: validates the run dates (validator tags calendardate) and
    checks that every input the enabled stages need exists. A missing input
    fails here with ingest.ErrInputMissing, before anything is computed.
 2. milestone: loads chats and profiles, keeps qualifying chats, evaluates
    every target day concurrently and writes the daily milestone table.
 3. funnel: loads agent reference data into the registry, loads the event
    log, flattens payloads, types events, computes the stage tables and
    writes the per-agent and overall hourly tables.
 4. summary: writes the run summary JSON and, when configured, the Prometheus
    textfile for node_exporter.

Either computation stage can be disabled in the configuration.

# Usage

	ctx := logging.ContextWithRunID(context.Background(), logging.GenerateRunID())
	summary, err := pipeline.Run(ctx, cfg, agents.NewRegistry())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Batch run failed")
	}
*/
package pipeline
