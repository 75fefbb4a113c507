// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package funnel

import (
	"sort"

	"github.com/tomtom215/northstar/internal/models"
	"github.com/tomtom215/northstar/internal/timebucket"
)

// Predicate selects the events a stage counts.
type Predicate func(models.Event) bool

// Column extracts a key or counted value from an event.
type Column func(models.Event) string

// cellKey identifies one (agent, date, hour) cell. agent is empty for
// overall tables.
type cellKey struct {
	agent  string
	bucket models.Bucket
}

func (k cellKey) less(o cellKey) bool {
	if k.agent != o.agent {
		return k.agent < o.agent
	}
	return k.bucket.Less(o.bucket)
}

// CountUniqueBy counts distinct values of counted per (group, date, hour) for
// the events matching filter. A nil group produces an overall table keyed by
// (date, hour) only.
//
// Events whose group value is empty are dropped. Empty counted values are not
// counted, so a cell whose events all lack the value reports 0.
// Output is sorted by agent, date, hour.
func CountUniqueBy(events []models.Event, b timebucket.Bucketer, filter Predicate, group, counted Column, metric string) []models.BucketedCount {
	sets := make(map[cellKey]map[string]struct{})

	for _, e := range events {
		if !filter(e) {
			continue
		}

		key := cellKey{bucket: b.Bucket(e.Time)}
		if group != nil {
			key.agent = group(e)
			if key.agent == "" {
				continue
			}
		}

		set, ok := sets[key]
		if !ok {
			set = make(map[string]struct{})
			sets[key] = set
		}
		if v := counted(e); v != "" {
			set[v] = struct{}{}
		}
	}

	keys := make([]cellKey, 0, len(sets))
	for k := range sets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	out := make([]models.BucketedCount, len(keys))
	for i, k := range keys {
		out[i] = models.BucketedCount{
			AgentID: k.agent,
			Bucket:  k.bucket,
			Metric:  metric,
			Value:   float64(len(sets[k])),
		}
	}
	return out
}

// Column accessors.
var (
	UserID        Column = func(e models.Event) string { return e.UserID }
	AgentID       Column = func(e models.Event) string { return e.AgentID }
	ClientID      Column = func(e models.Event) string { return e.ClientID }
	ChatSessionID Column = func(e models.Event) string { return e.ChatSessionID }
)
