// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package funnel

import (
	"sort"
	"time"

	"github.com/tomtom215/northstar/internal/models"
	"github.com/tomtom215/northstar/internal/timebucket"
)

type pairKey struct {
	user  string
	agent string
}

type meanAcc struct {
	sum   float64
	count int
}

// AverageCancelLatency pairs every intake with every cancel of the same
// (user_id, astrologerId) and averages cancel minus intake, in minutes, per
// (agent, intake date, intake hour).
//
// Events with an empty user or agent never pair. Unmatched intakes and
// cancels produce no cell. A cancel that precedes its intake yields a
// negative difference, which is kept.
func AverageCancelLatency(events []models.Event, b timebucket.Bucketer) []models.BucketedCount {
	cancels := make(map[pairKey][]time.Time)
	for _, e := range events {
		if e.Name != models.EventCancelWaitlist || e.UserID == "" || e.AgentID == "" {
			continue
		}
		k := pairKey{user: e.UserID, agent: e.AgentID}
		cancels[k] = append(cancels[k], e.Time)
	}

	acc := make(map[cellKey]*meanAcc)
	for _, e := range events {
		if e.Name != models.EventChatIntakeSubmit || e.UserID == "" || e.AgentID == "" {
			continue
		}
		matched := cancels[pairKey{user: e.UserID, agent: e.AgentID}]
		if len(matched) == 0 {
			continue
		}

		cell := cellKey{agent: e.AgentID, bucket: b.Bucket(e.Time)}
		m, ok := acc[cell]
		if !ok {
			m = &meanAcc{}
			acc[cell] = m
		}
		for _, cancelAt := range matched {
			m.sum += cancelAt.Sub(e.Time).Minutes()
			m.count++
		}
	}

	keys := make([]cellKey, 0, len(acc))
	for k := range acc {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	out := make([]models.BucketedCount, len(keys))
	for i, k := range keys {
		m := acc[k]
		out[i] = models.BucketedCount{
			AgentID: k.agent,
			Bucket:  k.bucket,
			Metric:  models.MetricAvgTimeDiffMinutes,
			Value:   m.sum / float64(m.count),
		}
	}
	return out
}
