// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

/*
Package models defines the data structures shared by the Northstar analytics
pipeline.

Model Categories:

1. Input Records:
  - ChatRecord: one chat session from the chat log
  - UserProfile: one registered user from the profile log
  - EventRecord: one raw event row with its flattened JSON payload
  - Event: a typed funnel event derived from an EventRecord
  - AgentMetadata: reference data for one consulting agent

2. Results:
  - DailyMilestoneResult: users who reached the chat milestone on a day
  - BucketedCount: one (agent, date, hour, metric) cell of a stage table
  - AgentHourlyRow / OverallHourlyRow: rows of the outer-joined wide tables

3. Support Types:
  - Flag: a nullable numeric or boolean column with pandas-style comparisons
  - Bucket: calendar date and hour of day in the reporting time zone
  - RowError: an input row rejected during loading

Null Handling:

Wide-table metrics are pointers. A nil metric means the stage produced no row
for that key, which the reports keep distinct from an observed zero.

Thread Safety:

All models are plain values, safe for concurrent read access once built.
*/
package models
