// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package funnel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/northstar/internal/models"
	"github.com/tomtom215/northstar/internal/timebucket"
)

// Result holds both wide tables of one funnel run.
type Result struct {
	Agents  []models.AgentHourlyRow
	Overall []models.OverallHourlyRow

	// StageRows is the cell count of each stage table, keyed by metric
	StageRows map[string]int
}

type stageJob struct {
	metric string
	run    func() []models.BucketedCount
	cells  []models.BucketedCount
}

func countJob(events []models.Event, b timebucket.Bucketer, s Stage) *stageJob {
	return &stageJob{
		metric: s.Metric,
		run: func() []models.BucketedCount {
			return CountUniqueBy(events, b, s.Filter, s.Group, s.Counted, s.Metric)
		},
	}
}

// Compute runs every funnel stage over events and joins the stage tables,
// taking the join sets from events themselves.
func Compute(ctx context.Context, events []models.Event, b timebucket.Bucketer) (Result, error) {
	return ComputeWithKeys(ctx, events, BuildJoinKeys(events), b)
}

// ComputeWithKeys is Compute with precomputed join sets, typically built by
// JoinKeysFromRecords over the full log. Stages share no state and run
// concurrently.
func ComputeWithKeys(ctx context.Context, events []models.Event, keys JoinKeys, b timebucket.Bucketer) (Result, error) {

	var agentJobs, overallJobs []*stageJob
	for _, s := range AgentStages(keys) {
		agentJobs = append(agentJobs, countJob(events, b, s))
	}
	agentJobs = append(agentJobs, &stageJob{
		metric: models.MetricAvgTimeDiffMinutes,
		run:    func() []models.BucketedCount { return AverageCancelLatency(events, b) },
	})
	for _, s := range OverallStages(keys) {
		overallJobs = append(overallJobs, countJob(events, b, s))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, job := range append(append([]*stageJob{}, agentJobs...), overallJobs...) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			job.cells = job.run()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{StageRows: make(map[string]int, len(agentJobs)+len(overallJobs))}

	agentTables := make([][]models.BucketedCount, len(agentJobs))
	for i, job := range agentJobs {
		agentTables[i] = job.cells
		res.StageRows[job.metric] = len(job.cells)
	}
	overallTables := make([][]models.BucketedCount, len(overallJobs))
	for i, job := range overallJobs {
		overallTables[i] = job.cells
		res.StageRows[job.metric] = len(job.cells)
	}

	res.Agents = PivotAgents(agentTables...)
	res.Overall = PivotOverall(overallTables...)
	return res, nil
}
