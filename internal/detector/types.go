package detector

import "time"

// TierSummary is the outcome of one reminder tier within a scan.
type TierSummary struct {
	Kind       string `json:"kind"`
	Doses      int    `json:"doses"`
	Notified   int    `json:"notified"`
	Suppressed int    `json:"suppressed"`

	// Skipped counts targets that had no delivery tokens, so no push was
	// attempted for them.
	Skipped int `json:"skipped"`
}

// ReminderSummary is the outcome of one per-minute reminder scan.
type ReminderSummary struct {
	RanAt time.Time     `json:"ran_at"`
	Tiers []TierSummary `json:"tiers"`
}

// StockSummary is the outcome of a low-stock check or sweep.
type StockSummary struct {
	RanAt      time.Time `json:"ran_at"`
	Checked    int       `json:"checked"`
	ZeroStock  int       `json:"zero_stock"`
	LowStock   int       `json:"low_stock"`
	Alerted    int       `json:"alerted"`
	Deduped    int       `json:"deduped"`
	EmailsSent int       `json:"emails_sent"`
}

// DigestSummary is the outcome of one weekly digest run.
// Sent + Errors always equals Eligible.
type DigestSummary struct {
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
	Eligible  int       `json:"eligible"`
	Batches   int       `json:"batches"`
	Sent      int       `json:"sent"`
	Errors    int       `json:"errors"`
}
