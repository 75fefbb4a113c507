// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package milestone

import (
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/northstar/internal/models"
	"github.com/tomtom215/northstar/internal/timebucket"
)

const day = 24 * time.Hour

// Config controls the milestone definition.
type Config struct {
	// WindowDays is the length of the trailing cohort window (default 90)
	WindowDays int

	// TargetCount is the qualifying chat count that defines the milestone (default 4)
	TargetCount int

	// Workers bounds the number of days computed concurrently; 0 means GOMAXPROCS
	Workers int
}

// DefaultConfig returns the fourth-chat-in-90-days definition.
func DefaultConfig() Config {
	return Config{
		WindowDays:  90,
		TargetCount: 4,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.WindowDays <= 0 {
		return fmt.Errorf("%w: window days must be positive, got %d", ErrInvalidConfig, c.WindowDays)
	}
	if c.TargetCount <= 0 {
		return fmt.Errorf("%w: target count must be positive, got %d", ErrInvalidConfig, c.TargetCount)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// Engine answers milestone queries over an immutable snapshot of qualifying
// chats and user profiles. It is safe for concurrent use.
type Engine struct {
	cfg Config

	// chats sorted by CreatedAt
	chats []models.ChatRecord

	// profile creation times per user, sorted
	profiles map[string][]time.Time
}

// NewEngine indexes the inputs. Chats must already be filtered to qualifying
// chats (see Qualifying). The inputs are copied, not retained.
func NewEngine(filteredChats []models.ChatRecord, profiles []models.UserProfile, cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	chats := make([]models.ChatRecord, len(filteredChats))
	copy(chats, filteredChats)
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].CreatedAt.Before(chats[j].CreatedAt)
	})

	byUser := make(map[string][]time.Time)
	for _, p := range profiles {
		byUser[p.UserID] = append(byUser[p.UserID], p.CreatedAt)
	}
	for _, times := range byUser {
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	}

	return &Engine{cfg: cfg, chats: chats, profiles: byUser}, nil
}

// Qualifying returns the chats that count toward the milestone.
func Qualifying(chats []models.ChatRecord) []models.ChatRecord {
	out := make([]models.ChatRecord, 0, len(chats))
	for _, c := range chats {
		if c.Qualifying() {
			out = append(out, c)
		}
	}
	return out
}

// UsersReachingTargetOn returns the users whose qualifying chat count reaches
// exactly the target on targetDate, sorted ascending.
//
// For target day D (midnight UTC) and window start W = D - WindowDays:
//   - prior chats are those in [W, D)
//   - today's chats are those on the calendar day D
//   - a user qualifies when 0 < prior < target and prior + today == target
//   - and the user has a profile created in [W, D]
//
// Users with no prior chats in the window never qualify, even when all of
// their target chats happen on D.
func (e *Engine) UsersReachingTargetOn(targetDate time.Time) []string {
	d := timebucket.Midnight(targetDate)
	windowStart := d.Add(-time.Duration(e.cfg.WindowDays) * day)

	lo := e.firstAtOrAfter(windowStart)
	mid := e.firstAtOrAfter(d)
	hi := e.firstAtOrAfter(d.Add(day))

	prior := make(map[string]int)
	for _, c := range e.chats[lo:mid] {
		prior[c.UserID]++
	}

	today := make(map[string]int)
	for _, c := range e.chats[mid:hi] {
		today[c.UserID]++
	}

	var users []string
	for user, n := range today {
		p, ok := prior[user]
		if !ok || p >= e.cfg.TargetCount {
			continue
		}
		if p+n != e.cfg.TargetCount {
			continue
		}
		if !e.inCohort(user, windowStart, d) {
			continue
		}
		users = append(users, user)
	}

	sort.Strings(users)
	return users
}

// firstAtOrAfter returns the index of the first chat created at or after t.
func (e *Engine) firstAtOrAfter(t time.Time) int {
	return sort.Search(len(e.chats), func(i int) bool {
		return !e.chats[i].CreatedAt.Before(t)
	})
}

// inCohort reports whether the user has a profile created in [from, to].
func (e *Engine) inCohort(user string, from, to time.Time) bool {
	times := e.profiles[user]
	i := sort.Search(len(times), func(i int) bool {
		return !times[i].Before(from)
	})
	return i < len(times) && !times[i].After(to)
}

// UsersReachingFourthChatOn returns the users whose fourth qualifying chat in
// the trailing 90-day window falls on targetDate.
func UsersReachingFourthChatOn(filteredChats []models.ChatRecord, profiles []models.UserProfile, targetDate time.Time) []string {
	e, err := NewEngine(filteredChats, profiles, DefaultConfig())
	if err != nil {
		// DefaultConfig is always valid
		panic(err)
	}
	return e.UsersReachingTargetOn(targetDate)
}
