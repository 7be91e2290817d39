// Package scheduler drives the periodic detectors. A single goroutine ticks
// once a minute and dispatches each cadence sequentially, so no detector
// ever overlaps its own next run. A slow run delays the following tick
// instead of parallelizing with it.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"adherence-srv/config"
	"adherence-srv/internal/detector"
	"adherence-srv/pkg/discord"
	pkgLog "adherence-srv/pkg/log"
)

// Scheduler owns the detector cadences: reminder tiers every minute, the
// stock sweep once per day, the digest once per week.
type Scheduler struct {
	l        pkgLog.Logger
	detector detector.UseCase
	discord  discord.IDiscord
	loc      *time.Location

	settings func() (config.AlertSettings, error)
	clock    func() time.Time

	lastSweepDate  string // calendar day of the last stock sweep
	lastDigestDate string // calendar day of the last weekly digest
}

// Config carries the scheduler dependencies that have defaults.
type Config struct {
	Location *time.Location
	Settings func() (config.AlertSettings, error)
}

// New creates the scheduler. Run must be called to start it.
func New(l pkgLog.Logger, det detector.UseCase, disc discord.IDiscord, cfg Config) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Settings == nil {
		cfg.Settings = config.LoadAlertSettings
	}
	return &Scheduler{
		l:        l,
		detector: det,
		discord:  disc,
		loc:      cfg.Location,
		settings: cfg.Settings,
		clock:    time.Now,
	}
}

// Run blocks ticking once a minute until ctx is cancelled. Intended to be
// called with `go`.
func (s *Scheduler) Run(ctx context.Context) error {
	s.l.Infof(ctx, "internal.scheduler.Run: started")

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.l.Infof(ctx, "internal.scheduler.Run: stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick runs every due cadence sequentially. Settings are re-read each tick
// so sweep and digest schedule changes apply without restart.
func (s *Scheduler) tick(ctx context.Context) {
	settings, err := s.settings()
	if err != nil {
		s.l.Errorf(ctx, "internal.scheduler.tick.settings: %v", err)
		return
	}

	now := s.clock().In(s.loc)
	today := now.Format("2006-01-02")

	s.runGuarded(ctx, "missed-dose reminders", func() error {
		_, err := s.detector.RunReminderTiers(ctx)
		return err
	})

	if now.Hour() == settings.StockSweepHour && s.lastSweepDate != today {
		s.lastSweepDate = today
		s.runGuarded(ctx, "low-stock sweep", func() error {
			summary, err := s.detector.RunStockSweep(ctx)
			if err != nil {
				return err
			}
			s.l.Infof(ctx, "internal.scheduler.tick: stock sweep checked=%d alerted=%d deduped=%d",
				summary.Checked, summary.Alerted, summary.Deduped)
			return nil
		})
	}

	// Hour match only, like the sweep: a slow prior run can push the tick
	// past the top of the hour, and an exact minute match would drop the
	// digest for the week. lastDigestDate keeps it to once per day.
	digestDue := int(now.Weekday()) == settings.DigestWeekday &&
		now.Hour() == settings.DigestHour
	if digestDue && s.lastDigestDate != today {
		s.lastDigestDate = today
		s.runGuarded(ctx, "weekly digest", func() error {
			summary, err := s.detector.RunWeeklyDigest(ctx)
			if err != nil {
				return err
			}
			if s.discord != nil {
				_ = s.discord.SendInfo(ctx, "Weekly digest completed",
					fmt.Sprintf("week %s: eligible=%d sent=%d errors=%d",
						summary.WeekStart.Format("2006-01-02"), summary.Eligible, summary.Sent, summary.Errors))
			}
			return nil
		})
	}
}

// runGuarded contains one detector run: an error or panic is logged and
// reported, never propagated, so the loop survives any single bad run.
func (s *Scheduler) runGuarded(ctx context.Context, name string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			s.l.Errorf(ctx, "internal.scheduler.runGuarded: %s panicked: %v", name, r)
			if s.discord != nil {
				_ = s.discord.SendError(ctx, "Detector panic", name, fmt.Errorf("%v", r))
			}
		}
	}()

	if err := fn(); err != nil {
		s.l.Errorf(ctx, "internal.scheduler.runGuarded: %s failed: %v", name, err)
		if s.discord != nil {
			_ = s.discord.SendError(ctx, "Detector run failed", name, err)
		}
	}
}
