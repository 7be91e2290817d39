package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"adherence-srv/config"
	"adherence-srv/internal/detector"
	"adherence-srv/pkg/log"
)

type fakeDetector struct {
	reminders int
	sweeps    int
	digests   int

	reminderErr error
	panicOnRun  bool
}

func (f *fakeDetector) RunReminderTiers(context.Context) (*detector.ReminderSummary, error) {
	if f.panicOnRun {
		panic("boom")
	}
	f.reminders++
	return &detector.ReminderSummary{}, f.reminderErr
}

func (f *fakeDetector) CheckMedication(context.Context, string) (*detector.StockSummary, error) {
	return &detector.StockSummary{}, nil
}

func (f *fakeDetector) RunStockSweep(context.Context) (*detector.StockSummary, error) {
	f.sweeps++
	return &detector.StockSummary{}, nil
}

func (f *fakeDetector) RunWeeklyDigest(context.Context) (*detector.DigestSummary, error) {
	f.digests++
	return &detector.DigestSummary{}, nil
}

var _ detector.UseCase = &fakeDetector{}

func settingsWith(sweepHour, digestWeekday, digestHour int) func() (config.AlertSettings, error) {
	return func() (config.AlertSettings, error) {
		return config.AlertSettings{
			StockSweepHour: sweepHour,
			DigestWeekday:  digestWeekday,
			DigestHour:     digestHour,
		}, nil
	}
}

func newTestScheduler(det *fakeDetector, settings func() (config.AlertSettings, error)) *Scheduler {
	return New(log.NewNop(), det, nil, Config{
		Location: time.UTC,
		Settings: settings,
	})
}

func TestTick_RemindersEveryTick(t *testing.T) {
	det := &fakeDetector{}
	s := newTestScheduler(det, settingsWith(8, 1, 9))
	s.clock = func() time.Time { return time.Date(2026, 3, 3, 12, 30, 0, 0, time.UTC) }

	ctx := context.Background()
	s.tick(ctx)
	s.tick(ctx)

	if det.reminders != 2 {
		t.Errorf("reminder runs = %d, want 2", det.reminders)
	}
	if det.sweeps != 0 || det.digests != 0 {
		t.Errorf("sweeps=%d digests=%d, want 0/0 outside their windows", det.sweeps, det.digests)
	}
}

func TestTick_SweepOncePerDay(t *testing.T) {
	det := &fakeDetector{}
	s := newTestScheduler(det, settingsWith(8, 1, 9))

	day := time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC)
	ctx := context.Background()

	for minute := 0; minute < 3; minute++ {
		now := day.Add(time.Duration(minute) * time.Minute)
		s.clock = func() time.Time { return now }
		s.tick(ctx)
	}
	if det.sweeps != 1 {
		t.Errorf("sweeps = %d, want 1 for the whole hour", det.sweeps)
	}

	// Next day fires again.
	s.clock = func() time.Time { return day.AddDate(0, 0, 1) }
	s.tick(ctx)
	if det.sweeps != 2 {
		t.Errorf("sweeps = %d, want 2 after the next day", det.sweeps)
	}
}

func TestTick_DigestAtConfiguredWeekdayHour(t *testing.T) {
	det := &fakeDetector{}
	// Monday 09:00.
	s := newTestScheduler(det, settingsWith(8, 1, 9))
	ctx := context.Background()

	monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	s.clock = func() time.Time { return monday }
	s.tick(ctx)
	s.tick(ctx)
	if det.digests != 1 {
		t.Errorf("digests = %d, want 1: same day must not refire", det.digests)
	}

	// Tuesday 09:00 is not the configured weekday.
	s.clock = func() time.Time { return monday.AddDate(0, 0, 1) }
	s.tick(ctx)
	if det.digests != 1 {
		t.Errorf("digests = %d, want still 1 on the wrong weekday", det.digests)
	}
}

func TestTick_DigestFiresOnLateTickWithinHour(t *testing.T) {
	det := &fakeDetector{}
	s := newTestScheduler(det, settingsWith(8, 1, 9))
	ctx := context.Background()

	// A slow prior run delayed the tick past the top of the hour. The
	// digest must still go out, and still only once for the day.
	monday := time.Date(2026, 3, 2, 9, 3, 0, 0, time.UTC)
	s.clock = func() time.Time { return monday }
	s.tick(ctx)
	if det.digests != 1 {
		t.Fatalf("digests = %d, want 1 when the first tick lands mid-hour", det.digests)
	}

	s.clock = func() time.Time { return monday.Add(time.Minute) }
	s.tick(ctx)
	if det.digests != 1 {
		t.Errorf("digests = %d, want still 1 later the same hour", det.digests)
	}
}

func TestTick_DigestScheduleReadAtTickTime(t *testing.T) {
	det := &fakeDetector{}
	hour := 9
	settings := func() (config.AlertSettings, error) {
		return config.AlertSettings{StockSweepHour: 8, DigestWeekday: 1, DigestHour: hour}, nil
	}
	s := newTestScheduler(det, settings)
	ctx := context.Background()

	monday10 := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s.clock = func() time.Time { return monday10 }
	s.tick(ctx)
	if det.digests != 0 {
		t.Fatalf("digests = %d, want 0 before the configured hour moved", det.digests)
	}

	// Operator moves the digest hour; no restart involved.
	hour = 10
	s.tick(ctx)
	if det.digests != 1 {
		t.Errorf("digests = %d, want 1 after the schedule change took effect", det.digests)
	}
}

func TestRunGuarded_ContainsPanicsAndErrors(t *testing.T) {
	det := &fakeDetector{panicOnRun: true}
	s := newTestScheduler(det, settingsWith(8, 1, 9))
	s.clock = func() time.Time { return time.Date(2026, 3, 3, 12, 30, 0, 0, time.UTC) }

	ctx := context.Background()
	s.tick(ctx) // must not panic out

	det.panicOnRun = false
	det.reminderErr = errors.New("store unreachable")
	s.tick(ctx)
	s.tick(ctx)
	if det.reminders != 2 {
		t.Errorf("reminder runs after failures = %d, want 2: the loop must survive", det.reminders)
	}
}
