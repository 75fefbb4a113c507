// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

// Package milestone computes the North Star retention metric: for each day,
// the users who complete their 4th qualifying chat on that day within a
// rolling 90-day cohort window.
//
// # Definition
//
// A chat qualifies when it used no free minutes and actually started. For a
// target day D the engine counts each user's qualifying chats in the 90 days
// before D and on D itself, and reports the users for whom the two add up to
// exactly four, restricted to users whose profile was created in the window.
// Day boundaries are UTC.
//
// # Performance
//
// NewEngine sorts the chats once; each day is then two binary searches and a
// scan of that day's window. IterateDateRange fans days out over a bounded
// errgroup, so a year of days costs roughly one window scan per core.
//
// # Usage
//
//	engine, err := milestone.NewEngine(milestone.Qualifying(chats), profiles, milestone.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	results, err := engine.IterateDateRange(ctx, start, end, func(done, total int) {
//	    _ = bar.Add(1)
//	})
package milestone
