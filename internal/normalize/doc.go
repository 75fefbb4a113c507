// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

// Package normalize turns raw event log rows into typed funnel events.
//
// Flatten decodes the JSON payload column (other_data) of each row with
// goccy/go-json and exposes nested fields under dotted names, so a payload of
//
//	{"astrologerId":"a1","meta":{"source":"app"}}
//
// yields the fields astrologerId and meta.source on the same record.
// Malformed payloads never fail the batch: the record keeps its raw columns,
// the failure is counted in Stats and listed in Failures.
//
// When a raw column and a payload field share a name, a non-empty raw value
// wins (see models.EventRecord.Get).
package normalize
