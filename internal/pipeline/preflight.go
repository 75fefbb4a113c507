// Northstar - Chat Consultation Retention and Funnel Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/northstar

package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/northstar/internal/config"
	"github.com/tomtom215/northstar/internal/ingest"
	"github.com/tomtom215/northstar/internal/timebucket"
	"github.com/tomtom215/northstar/internal/validation"
)

// RunRequest is the user-supplied date range of a milestone run.
type RunRequest struct {
	StartDate string `validate:"required,calendardate"`
	EndDate   string `validate:"required,calendardate"`
}

// runPlan is the resolved, validated input of a run.
type runPlan struct {
	start    time.Time
	end      time.Time
	bucketer timebucket.Bucketer
}

// preflight validates the run request and checks that every input the
// enabled stages need exists. Nothing is computed when it fails.
func preflight(cfg *config.Config) (*runPlan, error) {
	plan := &runPlan{}

	if cfg.Milestone.Enabled {
		req := RunRequest{StartDate: cfg.Milestone.StartDate, EndDate: cfg.Milestone.EndDate}
		if verr := validation.ValidateStruct(&req); verr != nil {
			return nil, fmt.Errorf("invalid run request: %w", verr)
		}
		// Both dates were validated above
		plan.start, _ = timebucket.ParseDate(req.StartDate)
		plan.end, _ = timebucket.ParseDate(req.EndDate)
	}

	if cfg.Funnel.Enabled {
		b, err := timebucket.NewWithOffset(cfg.Funnel.UTCOffset)
		if err != nil {
			return nil, fmt.Errorf("invalid funnel offset: %w", err)
		}
		plan.bucketer = b
	}

	if err := checkInputs(cfg); err != nil {
		return nil, err
	}
	return plan, nil
}

// checkInputs reports every missing input at once.
func checkInputs(cfg *config.Config) error {
	var errs []error
	if cfg.Milestone.Enabled {
		errs = append(errs,
			ingest.CheckInput(ingest.TableChats, cfg.Input.ChatsPath),
			ingest.CheckInput(ingest.TableProfiles, cfg.Input.ProfilesPath),
		)
	}
	if cfg.Funnel.Enabled {
		errs = append(errs, ingest.CheckInput(ingest.TableEvents, cfg.Input.EventsPath))
		if cfg.Input.AgentsPath != "" {
			errs = append(errs, ingest.CheckInput(ingest.TableAgents, cfg.Input.AgentsPath))
		}
	}
	return errors.Join(errs...)
}
