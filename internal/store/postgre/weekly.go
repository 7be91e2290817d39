package postgres

import (
	"context"
	"time"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"

	"adherence-srv/internal/model"
)

// WeeklyStats returns one aggregated row per caregiver x patient for the
// given window. A single set-returning call keeps the digest at one query
// instead of N+1 per caregiver.
func (s *Store) WeeklyStats(ctx context.Context, start, end time.Time) ([]model.WeeklyStatRow, error) {
	var rows []model.WeeklyStatRow
	err := queries.Raw(
		`SELECT caregiver_email, caregiver_name, patient_id, patient_name, expected_doses, taken_doses
		   FROM get_weekly_stats($1::date, $2::date)`,
		start.Format("2006-01-02"), end.Format("2006-01-02"),
	).Bind(ctx, s.db, &rows)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.WeeklyStats.Bind: %v", err)
		return nil, errors.Wrap(err, "query weekly stats")
	}
	return rows, nil
}

// InsertWeeklyAudit records the outcome of one digest run.
func (s *Store) InsertWeeklyAudit(ctx context.Context, audit model.WeeklyAudit) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO weekly_report_audit (week_start, week_end, eligible, sent, errors, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		audit.WeekStart, audit.WeekEnd, audit.Eligible, audit.Sent, audit.Errors, s.clock(),
	)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.InsertWeeklyAudit.Exec: %v", err)
		return errors.Wrap(err, "insert weekly audit")
	}
	return nil
}
