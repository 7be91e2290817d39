package postgres

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"

	"adherence-srv/internal/model"
)

// MissedDoses returns doses scheduled at exactly (targetDate, targetTime)
// with no matching consumption record. The matching itself lives in the
// get_missed_doses SQL function; targetTime is a minute-resolution wall
// clock value ("15:04") and targetDate a calendar day ("2006-01-02") in the
// application time zone.
func (s *Store) MissedDoses(ctx context.Context, targetTime, targetDate string) ([]model.MissedDose, error) {
	var rows []model.MissedDose
	err := queries.Raw(
		`SELECT prescription_id, patient_id, patient_name, patient_user_id, medication_name
		   FROM get_missed_doses($1::time, $2::date)`,
		targetTime, targetDate,
	).Bind(ctx, s.db, &rows)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.MissedDoses.Bind: %v", err)
		return nil, errors.Wrap(err, "query missed doses")
	}
	return rows, nil
}
