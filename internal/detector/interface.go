package detector

import (
	"context"
	"time"

	"adherence-srv/internal/model"
)

// UseCase defines the scheduled detector entry points. Each is a complete
// dispatch cycle: scan shared state, deduplicate, notify, report. The
// scheduler calls them on their cadence; the operational API can invoke them
// directly for manual testing.
type UseCase interface {
	// RunReminderTiers runs the per-minute missed-dose scan: the
	// patient-level nudge at the configured reminder delay and the
	// caregiver escalation at the fixed escalation delay.
	RunReminderTiers(ctx context.Context) (*ReminderSummary, error)

	// CheckMedication runs the low-stock check for a single medication,
	// used by the inline stock-change trigger path.
	CheckMedication(ctx context.Context, medicationID string) (*StockSummary, error)

	// RunStockSweep runs the once-daily low-stock scan over every
	// medication.
	RunStockSweep(ctx context.Context) (*StockSummary, error)

	// RunWeeklyDigest aggregates the previous Monday-Sunday window per
	// caregiver and emails one digest each, in rate-bounded batches.
	RunWeeklyDigest(ctx context.Context) (*DigestSummary, error)
}

// Store is the slice of the data store the detectors read and write.
type Store interface {
	MissedDoses(ctx context.Context, targetTime, targetDate string) ([]model.MissedDose, error)
	ProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]model.Profile, error)
	AcceptedCaregiverIDs(ctx context.Context, patientID string) ([]string, error)

	Medication(ctx context.Context, medicationID string) (model.Medication, error)
	Medications(ctx context.Context) ([]model.Medication, error)
	Patient(ctx context.Context, patientID string) (model.Patient, error)
	OwnerRecipient(ctx context.Context, patientID string) (model.Recipient, error)
	AcceptedCaregivers(ctx context.Context, patientID string) ([]model.Recipient, error)
	InsertAlertLog(ctx context.Context, entry model.AlertLogEntry) (bool, error)

	WeeklyStats(ctx context.Context, start, end time.Time) ([]model.WeeklyStatRow, error)
	InsertWeeklyAudit(ctx context.Context, audit model.WeeklyAudit) error
}
