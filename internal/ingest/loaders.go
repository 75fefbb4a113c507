// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/northstar/internal/models"
	"github.com/tomtom215/northstar/internal/timebucket"
)

// Input table names.
const (
	TableChats    = "chats"
	TableProfiles = "profiles"
	TableEvents   = "events"
	TableAgents   = "agents"
)

// Input column names.
const (
	ColChatUserID      = "userId"
	ColChatCreatedAt   = "createdAt"
	ColChatHasFreeMins = "hasFreeMins"
	ColChatEndReason   = "endReason"

	ColProfileID        = "_id"
	ColProfileCreatedAt = "createdAt"

	ColAgentID    = "_id"
	ColAgentAltID = "astro_id"
	ColAgentName  = "name"
	ColAgentType  = "type"
)

// Required columns per table.
var (
	ChatColumns    = []string{ColChatUserID, ColChatCreatedAt, ColChatHasFreeMins, ColChatEndReason}
	ProfileColumns = []string{ColProfileID, ColProfileCreatedAt}
	EventColumns   = []string{models.ColEventName, models.ColEventTime, models.ColUserID}
	AgentColumns   = []string{ColAgentName, ColAgentType}
)

// LoadChats reads the chat log.
func (r *Reader) LoadChats(ctx context.Context, path string, policy Policy) ([]models.ChatRecord, *LoadStats, error) {
	table, err := r.ReadTable(ctx, TableChats, path, ChatColumns)
	if err != nil {
		return nil, nil, err
	}
	return ChatsFromTable(ctx, table, policy)
}

// ChatsFromTable converts a chat table. Rows without a user id or with an
// unparseable createdAt are rejected.
func ChatsFromTable(ctx context.Context, table *Table, policy Policy) ([]models.ChatRecord, *LoadStats, error) {
	stats := &LoadStats{Table: TableChats, Read: table.Len(), StartTime: time.Now()}
	out := make([]models.ChatRecord, 0, table.Len())

	for i := 0; i < table.Len(); i++ {
		userID := table.String(i, ColChatUserID)
		if userID == "" {
			stats.Reject(ctx, missingValue(TableChats, i+1, ColChatUserID))
			continue
		}

		raw := table.String(i, ColChatCreatedAt)
		createdAt, err := timebucket.ParseTimestamp(raw)
		if err != nil {
			rowErr := badTimestamp(TableChats, i+1, ColChatCreatedAt, raw, err)
			stats.Reject(ctx, rowErr)
			if policy.StrictTimestamps {
				return nil, stats, fmt.Errorf("%w: %w", ErrRejectedRow, rowErr)
			}
			continue
		}

		out = append(out, models.ChatRecord{
			UserID:      userID,
			CreatedAt:   createdAt,
			HasFreeMins: models.ParseFlag(table.String(i, ColChatHasFreeMins)),
			EndReason:   table.String(i, ColChatEndReason),
		})
	}

	stats.Accepted = len(out)
	stats.EndTime = time.Now()
	return out, stats, nil
}

// LoadProfiles reads the user profile log.
func (r *Reader) LoadProfiles(ctx context.Context, path string, policy Policy) ([]models.UserProfile, *LoadStats, error) {
	table, err := r.ReadTable(ctx, TableProfiles, path, ProfileColumns)
	if err != nil {
		return nil, nil, err
	}
	return ProfilesFromTable(ctx, table, policy)
}

// ProfilesFromTable converts a profile table, renaming _id to the user id.
func ProfilesFromTable(ctx context.Context, table *Table, policy Policy) ([]models.UserProfile, *LoadStats, error) {
	stats := &LoadStats{Table: TableProfiles, Read: table.Len(), StartTime: time.Now()}
	out := make([]models.UserProfile, 0, table.Len())

	for i := 0; i < table.Len(); i++ {
		userID := table.String(i, ColProfileID)
		if userID == "" {
			stats.Reject(ctx, missingValue(TableProfiles, i+1, ColProfileID))
			continue
		}

		raw := table.String(i, ColProfileCreatedAt)
		createdAt, err := timebucket.ParseTimestamp(raw)
		if err != nil {
			rowErr := badTimestamp(TableProfiles, i+1, ColProfileCreatedAt, raw, err)
			stats.Reject(ctx, rowErr)
			if policy.StrictTimestamps {
				return nil, stats, fmt.Errorf("%w: %w", ErrRejectedRow, rowErr)
			}
			continue
		}

		out = append(out, models.UserProfile{UserID: userID, CreatedAt: createdAt})
	}

	stats.Accepted = len(out)
	stats.EndTime = time.Now()
	return out, stats, nil
}

// LoadEventRecords reads the event log as raw records. Timestamps are parsed
// after payload flattening, since event fields may arrive in the payload.
func (r *Reader) LoadEventRecords(ctx context.Context, path string) ([]models.EventRecord, error) {
	table, err := r.ReadTable(ctx, TableEvents, path, EventColumns)
	if err != nil {
		return nil, err
	}
	return table.Records(), nil
}

// LoadAgents reads agent reference data from CSV. The id column may be named
// _id or astro_id. Compensation types are upper-cased.
func (r *Reader) LoadAgents(ctx context.Context, path string) ([]models.AgentMetadata, *LoadStats, error) {
	table, err := r.ReadTable(ctx, TableAgents, path, AgentColumns)
	if err != nil {
		return nil, nil, err
	}
	return AgentsFromTable(ctx, table)
}

// AgentsFromTable converts an agent table.
func AgentsFromTable(ctx context.Context, table *Table) ([]models.AgentMetadata, *LoadStats, error) {
	idCol, ok := table.FirstOf(ColAgentID, ColAgentAltID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s (%s) lacks %s or %s",
			ErrMissingColumn, table.Name, table.Path, ColAgentID, ColAgentAltID)
	}

	stats := &LoadStats{Table: TableAgents, Read: table.Len(), StartTime: time.Now()}
	out := make([]models.AgentMetadata, 0, table.Len())

	for i := 0; i < table.Len(); i++ {
		id := strings.TrimSpace(table.String(i, idCol))
		if id == "" {
			stats.Reject(ctx, missingValue(TableAgents, i+1, idCol))
			continue
		}
		out = append(out, models.AgentMetadata{
			AgentID:          id,
			Name:             table.String(i, ColAgentName),
			CompensationType: strings.ToUpper(strings.TrimSpace(table.String(i, ColAgentType))),
		})
	}

	stats.Accepted = len(out)
	stats.EndTime = time.Now()
	return out, stats, nil
}

func missingValue(table string, row int, column string) models.RowError {
	return models.RowError{
		Table:  table,
		Row:    row,
		Column: column,
		Err:    ErrRejectedRow,
		Reason: "empty value",
	}
}

func badTimestamp(table string, row int, column, raw string, err error) models.RowError {
	return models.RowError{
		Table:  table,
		Row:    row,
		Column: column,
		Value:  raw,
		Err:    err,
		Reason: err.Error(),
	}
}
