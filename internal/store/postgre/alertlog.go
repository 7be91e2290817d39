package postgres

import (
	"context"

	"github.com/friendsofgo/errors"
	"github.com/lib/pq"

	"adherence-srv/internal/model"
)

// InsertAlertLog appends one entry to the idempotency ledger. The insert is
// conditional on the (subject_id, alert_kind, alert_date) uniqueness
// constraint: the first caller of the day wins and gets created=true, every
// concurrent or later caller gets created=false. This closes the
// read-then-write race between the inline low-stock trigger and the daily
// sweep.
func (s *Store) InsertAlertLog(ctx context.Context, entry model.AlertLogEntry) (bool, error) {
	sentAt := entry.SentAt
	if sentAt.IsZero() {
		sentAt = s.clock()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO alert_log (subject_id, alert_kind, alert_date, sent_at, recipients)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (subject_id, alert_kind, alert_date) DO NOTHING`,
		entry.SubjectID, string(entry.Kind), entry.AlertDate, sentAt, pq.Array(entry.Recipients),
	)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.InsertAlertLog.Exec: %v", err)
		return false, errors.Wrap(err, "insert alert log")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.InsertAlertLog.RowsAffected: %v", err)
		return false, errors.Wrap(err, "insert alert log")
	}

	return affected == 1, nil
}
