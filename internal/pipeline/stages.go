// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/tomtom215/northstar/internal/agents"
	"github.com/tomtom215/northstar/internal/config"
	"github.com/tomtom215/northstar/internal/funnel"
	"github.com/tomtom215/northstar/internal/ingest"
	"github.com/tomtom215/northstar/internal/logging"
	"github.com/tomtom215/northstar/internal/metrics"
	"github.com/tomtom215/northstar/internal/milestone"
	"github.com/tomtom215/northstar/internal/models"
	"github.com/tomtom215/northstar/internal/normalize"
	"github.com/tomtom215/northstar/internal/report"
)

// maxSummaryFailures caps the payload failures listed in the summary.
const maxSummaryFailures = 100

func runMilestone(ctx context.Context, cfg *config.Config, plan *runPlan, reader *ingest.Reader, summary *Summary) error {
	logger := logging.Ctx(ctx)
	policy := ingest.Policy{StrictTimestamps: cfg.Input.StrictTimestamps}

	chats, chatStats, err := reader.LoadChats(ctx, cfg.Input.ChatsPath, policy)
	if chatStats != nil {
		summary.Inputs = append(summary.Inputs, chatStats)
	}
	if err != nil {
		return fmt.Errorf("load chats: %w", err)
	}

	profiles, profileStats, err := reader.LoadProfiles(ctx, cfg.Input.ProfilesPath, policy)
	if profileStats != nil {
		summary.Inputs = append(summary.Inputs, profileStats)
	}
	if err != nil {
		return fmt.Errorf("load profiles: %w", err)
	}

	qualifying := milestone.Qualifying(chats)
	engine, err := milestone.NewEngine(qualifying, profiles, milestone.Config{
		WindowDays:  cfg.Milestone.WindowDays,
		TargetCount: cfg.Milestone.TargetCount,
		Workers:     cfg.Milestone.Workers,
	})
	if err != nil {
		return err
	}

	logger.Info().
		Int("chats", len(chats)).
		Int("qualifying_chats", len(qualifying)).
		Int("profiles", len(profiles)).
		Time("start", plan.start).
		Time("end", plan.end).
		Msg("Evaluating daily milestone")

	var progress milestone.ProgressFunc
	if cfg.Milestone.Progress {
		bar := progressbar.Default(int64(len(milestone.Days(plan.start, plan.end))), "milestone days")
		progress = func(int, int) { _ = bar.Add(1) }
		defer bar.Finish() //nolint:errcheck // progress output only
	}

	results, err := engine.IterateDateRange(ctx, plan.start, plan.end, progress)
	if err != nil {
		return fmt.Errorf("iterate date range: %w", err)
	}

	userDays := 0
	for _, r := range results {
		metrics.RecordMilestoneDay(r.UniqueUserCount)
		userDays += r.UniqueUserCount
	}

	summary.Milestone = &MilestoneSummary{
		StartDate:       plan.start.Format(models.DateLayout),
		EndDate:         plan.end.Format(models.DateLayout),
		WindowDays:      cfg.Milestone.WindowDays,
		TargetCount:     cfg.Milestone.TargetCount,
		Chats:           len(chats),
		QualifyingChats: len(qualifying),
		Profiles:        len(profiles),
		Days:            len(results),
		UserDays:        userDays,
	}

	return writeTable(ctx, summary, OutputMilestone, cfg.Output.MilestonePath(),
		report.MilestoneColumns, report.MilestoneRecords(results))
}

func runFunnel(ctx context.Context, cfg *config.Config, plan *runPlan, reader *ingest.Reader, registry *agents.Registry, summary *Summary) error {
	logger := logging.Ctx(ctx)

	if cfg.Input.AgentsPath != "" {
		if _, err := registry.LoadFile(ctx, cfg.Input.AgentsPath, reader); err != nil {
			return err
		}
	} else {
		logger.Warn().Msg("No agent reference data configured; agent name and type will be empty")
	}

	records, err := reader.LoadEventRecords(ctx, cfg.Input.EventsPath)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	flat := normalize.Flatten(records, cfg.Input.PayloadColumn)
	metrics.RecordPayloadOutcomes(flat.Stats.Parsed, flat.Stats.Absent, flat.Stats.Invalid)
	if flat.Stats.Invalid > 0 {
		logger.Warn().
			Int("invalid", flat.Stats.Invalid).
			Str("column", cfg.Input.PayloadColumn).
			Msg("Some event payloads could not be parsed; their fields are treated as absent")
	}

	eventStats := &ingest.LoadStats{Table: ingest.TableEvents, Read: len(records), StartTime: time.Now()}
	summary.Inputs = append(summary.Inputs, eventStats)

	events, rejected, err := normalize.Events(flat.Records, cfg.Input.StrictTimestamps)
	for _, rowErr := range rejected {
		eventStats.Reject(ctx, rowErr)
	}
	eventStats.Accepted = len(events)
	eventStats.EndTime = time.Now()
	if err != nil {
		return fmt.Errorf("type events: %w", err)
	}

	// join sets come from every record, including rows rejected above
	keys := funnel.JoinKeysFromRecords(flat.Records)
	result, err := funnel.ComputeWithKeys(ctx, events, keys, plan.bucketer)
	if err != nil {
		return fmt.Errorf("compute funnel: %w", err)
	}
	for metric, n := range result.StageRows {
		metrics.SetFunnelStageRows(metric, n)
	}

	agentRows := report.AssembleAgents(result.Agents, registry)

	failures := flat.Failures
	if len(failures) > maxSummaryFailures {
		failures = failures[:maxSummaryFailures]
	}
	summary.Funnel = &FunnelSummary{
		UTCOffset:        cfg.Funnel.UTCOffset,
		Events:           len(events),
		AgentsRegistered: registry.Len(),
		Payload:          flat.Stats,
		PayloadFailures:  failures,
		PayloadColumns:   flat.PayloadColumns,
		StageRows:        result.StageRows,
		AgentRows:        len(agentRows),
		OverallRows:      len(result.Overall),
	}

	if err := writeTable(ctx, summary, OutputAgents, cfg.Output.AgentPath(),
		report.AgentColumns, report.AgentRecords(agentRows)); err != nil {
		return err
	}
	return writeTable(ctx, summary, OutputOverall, cfg.Output.OverallPath(),
		report.OverallColumns, report.OverallRecords(result.Overall))
}
