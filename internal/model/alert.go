package model

import "time"

// AlertKind identifies the condition class an alert belongs to.
type AlertKind string

const (
	AlertKindMissedDose          AlertKind = "missed_dose"
	AlertKindCaregiverEscalation AlertKind = "caregiver_escalation"
	AlertKindLowStock            AlertKind = "low_stock"
	AlertKindSOS                 AlertKind = "sos"
	AlertKindWeeklyDigest        AlertKind = "weekly_digest"
)

// AlertCondition is a detected alert-worthy situation. It is produced fresh
// on every detector run and handed to the dispatcher; only its fingerprint is
// ever persisted.
type AlertCondition struct {
	Kind          AlertKind
	SubjectID     string
	ScheduledTime time.Time
	DetectedAt    time.Time
	Payload       map[string]string
}

// AlertLogEntry is one row of the append-only idempotency ledger. For a given
// (SubjectID, Kind, AlertDate) fingerprint at most one row may exist.
type AlertLogEntry struct {
	SubjectID  string    `boil:"subject_id"`
	Kind       AlertKind `boil:"alert_kind"`
	AlertDate  string    `boil:"alert_date"` // calendar day, YYYY-MM-DD
	SentAt     time.Time `boil:"sent_at"`
	Recipients []string  `boil:"-"`
}

// WeeklyAudit records the outcome of one weekly digest run.
// Invariant: Sent + Errors equals the number of eligible recipients.
type WeeklyAudit struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Eligible  int
	Sent      int
	Errors    int
}
