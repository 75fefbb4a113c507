// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package milestone

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/northstar/internal/models"
	"github.com/tomtom215/northstar/internal/timebucket"
)

// ProgressFunc is called once per completed day. It may be called from
// several goroutines at once.
type ProgressFunc func(done, total int)

// Days returns every calendar day from start to end inclusive, as midnight
// UTC. It returns nil when start is after end.
func Days(start, end time.Time) []time.Time {
	s := timebucket.Midnight(start)
	e := timebucket.Midnight(end)
	if s.After(e) {
		return nil
	}

	var days []time.Time
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// IterateDateRange computes one DailyMilestoneResult per day from start to
// end inclusive, in date order. An inverted range yields an empty result.
//
// Days are computed concurrently on up to Config.Workers goroutines; each day
// reads the shared immutable index and writes its own result slot.
func (e *Engine) IterateDateRange(ctx context.Context, start, end time.Time, progress ProgressFunc) ([]models.DailyMilestoneResult, error) {
	days := Days(start, end)
	results := make([]models.DailyMilestoneResult, len(days))
	if len(days) == 0 {
		return results, nil
	}

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var done atomic.Int64
	total := len(days)

	for i, d := range days {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			users := e.UsersReachingTargetOn(d)
			if users == nil {
				users = []string{}
			}
			results[i] = models.DailyMilestoneResult{
				Date:            d,
				UniqueUserCount: len(users),
				UserIDs:         users,
			}

			if progress != nil {
				progress(int(done.Add(1)), total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// IterateDateRange evaluates the fourth-chat milestone for every day in
// [start, end] with the default definition.
func IterateDateRange(ctx context.Context, filteredChats []models.ChatRecord, profiles []models.UserProfile, start, end time.Time) ([]models.DailyMilestoneResult, error) {
	e, err := NewEngine(filteredChats, profiles, DefaultConfig())
	if err != nil {
		return nil, err
	}
	return e.IterateDateRange(ctx, start, end, nil)
}
