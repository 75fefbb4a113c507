// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package funnel

import "github.com/tomtom215/northstar/internal/models"

// Stage is one funnel step: which events it counts, how they are grouped and
// which value is counted distinctly.
type Stage struct {
	Metric string

	// Group is nil for overall stages
	Group   Column
	Filter  Predicate
	Counted Column
}

// JoinKeys are the cross-event-type sets computed over the whole log,
// independent of time buckets.
type JoinKeys struct {
	// IntakeSubmitters holds the user_id of every chat_intake_submit event
	IntakeSubmitters map[string]struct{}

	// SessionsWithMessage holds every chatSessionId with at least one chat_msg_send
	SessionsWithMessage map[string]struct{}
}

// BuildJoinKeys scans the typed event log once for the stage join sets.
func BuildJoinKeys(events []models.Event) JoinKeys {
	keys := newJoinKeys()
	for _, e := range events {
		keys.add(e.Name, e.UserID, e.ChatSessionID)
	}
	return keys
}

// JoinKeysFromRecords builds the join sets from raw event records. Join
// membership never depends on event_time, so records whose timestamp was
// rejected still contribute their user or session.
func JoinKeysFromRecords(records []models.EventRecord) JoinKeys {
	keys := newJoinKeys()
	for _, rec := range records {
		keys.add(rec.Value(models.ColEventName), rec.Value(models.ColUserID), rec.Value(models.ColChatSessionID))
	}
	return keys
}

func newJoinKeys() JoinKeys {
	return JoinKeys{
		IntakeSubmitters:    make(map[string]struct{}),
		SessionsWithMessage: make(map[string]struct{}),
	}
}

func (k JoinKeys) add(name, user, session string) {
	switch name {
	case models.EventChatIntakeSubmit:
		if user != "" {
			k.IntakeSubmitters[user] = struct{}{}
		}
	case models.EventChatMsgSend:
		if session != "" {
			k.SessionsWithMessage[session] = struct{}{}
		}
	}
}

func named(name string) Predicate {
	return func(e models.Event) bool { return e.Name == name }
}

func (k JoinKeys) isIntakeSubmitter(id string) bool {
	_, ok := k.IntakeSubmitters[id]
	return ok
}

func (k JoinKeys) hasMessages(session string) bool {
	_, ok := k.SessionsWithMessage[session]
	return ok
}

// AgentStages returns the per-agent count stages. For accept_chat events the
// acting user_id is the agent.
func AgentStages(k JoinKeys) []Stage {
	return []Stage{
		{
			Metric:  models.MetricChatIntakeRequests,
			Group:   AgentID,
			Filter:  named(models.EventChatIntakeSubmit),
			Counted: UserID,
		},
		{
			Metric:  models.MetricCancelledRequests,
			Group:   AgentID,
			Filter:  named(models.EventCancelWaitlist),
			Counted: UserID,
		},
		{
			Metric: models.MetricChatAccepted,
			Group:  UserID,
			Filter: func(e models.Event) bool {
				return e.Name == models.EventAcceptChat && e.Paid.EqualsZero() && k.isIntakeSubmitter(e.ClientID)
			},
			Counted: ClientID,
		},
		{
			Metric: models.MetricChatCompleted,
			Group:  UserID,
			Filter: func(e models.Event) bool {
				return e.Name == models.EventAcceptChat && e.Paid.EqualsZero() && k.hasMessages(e.ChatSessionID)
			},
			Counted: ClientID,
		},
		{
			Metric: models.MetricPaidChatsCompleted,
			Group:  UserID,
			Filter: func(e models.Event) bool {
				return e.Name == models.EventAcceptChat && !e.Paid.EqualsZero() && k.hasMessages(e.ChatSessionID)
			},
			Counted: ClientID,
		},
	}
}

// OverallStages returns the all-agent count stages.
func OverallStages(k JoinKeys) []Stage {
	return []Stage{
		{
			Metric:  models.MetricChatIntakeOverall,
			Filter:  named(models.EventChatIntakeSubmit),
			Counted: UserID,
		},
		{
			Metric: models.MetricChatAcceptedOverall,
			Filter: func(e models.Event) bool {
				return e.Name == models.EventAcceptChat && e.Paid.EqualsZero() && k.isIntakeSubmitter(e.ClientID)
			},
			Counted: ClientID,
		},
		{
			Metric: models.MetricChatCompletedOverall,
			Filter: func(e models.Event) bool {
				return e.Name == models.EventAcceptChat && k.hasMessages(e.ChatSessionID)
			},
			Counted: ClientID,
		},
		{
			Metric:  models.MetricAstrosLive,
			Filter:  named(models.EventAcceptChat),
			Counted: UserID,
		},
		{
			Metric:  models.MetricUsersLive,
			Filter:  models.Event.IsPageView,
			Counted: UserID,
		},
	}
}
