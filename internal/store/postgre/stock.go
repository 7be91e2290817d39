package postgres

import (
	"context"
	"database/sql"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"

	"adherence-srv/internal/model"
	postgresPkg "adherence-srv/pkg/postgre"
)

const medicationColumns = `id, patient_id, name, quantity, daily_usage, pharmacy_email`

// Medication returns one medication with its stock snapshot.
func (s *Store) Medication(ctx context.Context, medicationID string) (model.Medication, error) {
	if err := postgresPkg.IsUUID(medicationID); err != nil {
		return model.Medication{}, err
	}

	var m model.Medication
	err := queries.Raw(
		`SELECT `+medicationColumns+` FROM medications WHERE id = $1`,
		medicationID,
	).Bind(ctx, s.db, &m)
	if err == sql.ErrNoRows {
		return model.Medication{}, ErrNotFound
	}
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.Medication.Bind: %v", err)
		return model.Medication{}, errors.Wrap(err, "query medication")
	}
	return m, nil
}

// Medications returns every tracked medication for the daily stock sweep.
// Threshold filtering happens in the detector because the threshold is a
// runtime setting.
func (s *Store) Medications(ctx context.Context) ([]model.Medication, error) {
	var rows []model.Medication
	err := queries.Raw(
		`SELECT ` + medicationColumns + ` FROM medications ORDER BY quantity / NULLIF(daily_usage, 0) ASC NULLS LAST`,
	).Bind(ctx, s.db, &rows)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.Medications.Bind: %v", err)
		return nil, errors.Wrap(err, "query medications")
	}
	return rows, nil
}
