package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// AlertSettings are the operator-tunable knobs of the alert engine. They are
// re-parsed from the environment on every detector invocation so a changed
// value takes effect without a process restart.
type AlertSettings struct {
	// ReminderDelayMinutes is how long after a scheduled dose the
	// patient-level missed-dose nudge fires.
	ReminderDelayMinutes int `env:"REMINDER_DELAY_MINUTES" envDefault:"15"`

	// EscalationDelayMinutes is the caregiver escalation horizon.
	EscalationDelayMinutes int `env:"ESCALATION_DELAY_MINUTES" envDefault:"40"`

	// LowStockThresholdDays triggers a low-stock alert when a medication's
	// remaining days of supply drop below it.
	LowStockThresholdDays int `env:"LOW_STOCK_THRESHOLD_DAYS" envDefault:"4"`

	// StockSweepHour is the local hour of the daily all-medication sweep.
	StockSweepHour int `env:"STOCK_SWEEP_HOUR" envDefault:"8"`

	// DigestWeekday / DigestHour schedule the weekly caregiver digest
	// (0 = Sunday ... 6 = Saturday).
	DigestWeekday int `env:"DIGEST_WEEKDAY" envDefault:"1"`
	DigestHour    int `env:"DIGEST_HOUR" envDefault:"9"`

	// DigestBatchSize / DigestBatchDelay bound the burst load on the email
	// gateway during the weekly digest.
	DigestBatchSize  int           `env:"DIGEST_BATCH_SIZE" envDefault:"50"`
	DigestBatchDelay time.Duration `env:"DIGEST_BATCH_DELAY" envDefault:"3s"`
}

// ReminderDelay returns the patient-tier delay as a duration.
func (s AlertSettings) ReminderDelay() time.Duration {
	return time.Duration(s.ReminderDelayMinutes) * time.Minute
}

// EscalationDelay returns the caregiver-tier delay as a duration.
func (s AlertSettings) EscalationDelay() time.Duration {
	return time.Duration(s.EscalationDelayMinutes) * time.Minute
}

// LoadAlertSettings parses the current alert settings from the environment.
func LoadAlertSettings() (AlertSettings, error) {
	s := AlertSettings{}
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("error loading alert settings: %w", err)
	}
	if s.DigestBatchSize <= 0 {
		s.DigestBatchSize = 50
	}
	if s.DigestWeekday < 0 || s.DigestWeekday > 6 {
		return s, fmt.Errorf("digest weekday out of range: %d", s.DigestWeekday)
	}
	return s, nil
}
