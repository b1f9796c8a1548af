// SPDX-FileCopyrightText: 2026 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/zapr"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// DefaultSpec is minute 0, hour 8, every day of every month.
	DefaultSpec        = "0 8 * * *"
	DefaultTimezone    = "Africa/Lagos"
	DefaultDescription = "Daily at 8:00 AM WAT"
)

// wat is West Africa Time. Lagos has not observed daylight saving since 1919,
// so a fixed zone is equivalent when the tz database is unavailable.
var wat = time.FixedZone("WAT", 60*60)

// LoadLocation resolves a timezone name, falling back to a fixed WAT zone for
// Africa/Lagos when the host has no tz database.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc, nil
	}
	if name == DefaultTimezone {
		return wat, nil
	}
	return nil, fmt.Errorf("loading timezone %q: %w", name, err)
}

// Scheduler runs a single job on a cron schedule. Every firing runs in its own
// goroutine and is not awaited; a firing is never skipped because a previous
// one is still running.
type Scheduler struct {
	cron     *cron.Cron
	entry    cron.EntryID
	schedule cron.Schedule
	spec     string
	location *time.Location
	log      *zap.SugaredLogger
}

// New parses spec as a five-field cron expression evaluated in timezone and
// registers job against it. The scheduler does not run until Start is called.
func New(spec, timezone string, job func(), log *zap.Logger) (*Scheduler, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return nil, err
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parsing cron expression %q: %w", spec, err)
	}

	// cron chatter (wake/run/schedule) goes to debug; errors and recovered
	// panics are always logged.
	cronLog := zapr.NewLogger(log.Named("cron")).V(1)
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog)),
	)
	entry := c.Schedule(schedule, cron.FuncJob(job))

	return &Scheduler{
		cron:     c,
		entry:    entry,
		schedule: schedule,
		spec:     spec,
		location: loc,
		log:      log.Sugar().Named("scheduler"),
	}, nil
}

// Start begins firing the job in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Infow("Cron job scheduled",
		"spec", s.spec,
		"timezone", s.location.String(),
		"nextRun", s.Next().Format(time.RFC3339))
}

// Stop prevents further firings. The returned context is done once running
// jobs have completed.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// Next returns the next instant the job will fire.
func (s *Scheduler) Next() time.Time {
	if next := s.cron.Entry(s.entry).Next; !next.IsZero() {
		return next
	}
	return s.NextAfter(time.Now())
}

// NextAfter returns the first matching instant strictly after t, expressed in
// the scheduler's timezone.
func (s *Scheduler) NextAfter(t time.Time) time.Time {
	return s.schedule.Next(t.In(s.location))
}

// Location returns the timezone the schedule is evaluated in.
func (s *Scheduler) Location() *time.Location {
	return s.location
}

// Spec returns the cron expression the scheduler was created with.
func (s *Scheduler) Spec() string {
	return s.spec
}
