// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

/*
Package funnel aggregates the chat funnel (intake, accept, complete, cancel)
into hourly unique counts per agent and across all agents.

Every stage is a pure function from the event slice to a stage table of
models.BucketedCount cells; nothing is shared between stages except the
read-only event slice and the JoinKeys computed once up front.

Per-agent stages (grouped by agent, date, hour):

	chat_intake_requests   chat_intake_submit                  distinct user_id
	cancelled_requests     confirm_cancel_waiting_list         distinct user_id
	chat_accepted          accept_chat, paid==0, client
	                       submitted an intake                 distinct clientId
	chat_completed         accept_chat, paid==0, session
	                       has a chat_msg_send                 distinct clientId
	paid_chats_completed   accept_chat, paid!=0, session
	                       has a chat_msg_send                 distinct clientId
	avg_time_diff_minutes  mean(cancel - intake) per (user, agent) pair

Overall stages (grouped by date, hour): chat_intake_overall,
chat_accepted_overall, chat_completed_overall, astros_live, users_live.

Hours are taken in the Bucketer's zone (IST by default) for every stage, so
the outer joins in PivotAgents and PivotOverall line up. A nil metric in a
wide row means the stage had no events for that key.
*/
package funnel
