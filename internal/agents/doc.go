// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

// Package agents keeps the agent reference data (name and compensation type)
// joined onto the per-agent funnel report.
//
// The reference set comes from a CSV export (_id or astro_id, name, type) or
// from a YAML file of the form:
//
//	agents:
//	  - id: a1
//	    name: Asha
//	    type: PAYROLL
//
// Registry satisfies report.AgentLookup.
package agents
