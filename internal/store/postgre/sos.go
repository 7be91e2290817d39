package postgres

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"

	"adherence-srv/internal/model"
	postgresPkg "adherence-srv/pkg/postgre"
)

// ActivePrescriptions returns the patient's active prescriptions for the SOS
// email medication summary.
func (s *Store) ActivePrescriptions(ctx context.Context, patientID string) ([]model.Prescription, error) {
	if err := postgresPkg.IsUUID(patientID); err != nil {
		return nil, err
	}

	var rows []model.Prescription
	err := queries.Raw(
		`SELECT pr.id, pr.patient_id, m.name AS medication_name, pr.dosage
		   FROM prescriptions pr
		   JOIN medications m ON m.id = pr.medication_id
		  WHERE pr.patient_id = $1 AND pr.active`,
		patientID,
	).Bind(ctx, s.db, &rows)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.ActivePrescriptions.Bind: %v", err)
		return nil, errors.Wrap(err, "query active prescriptions")
	}
	return rows, nil
}

// EmergencyContacts returns the patient's configured emergency contacts.
func (s *Store) EmergencyContacts(ctx context.Context, patientID string) ([]model.EmergencyContact, error) {
	if err := postgresPkg.IsUUID(patientID); err != nil {
		return nil, err
	}

	var rows []model.EmergencyContact
	err := queries.Raw(
		`SELECT patient_id, name, email, phone_encrypted
		   FROM emergency_contacts WHERE patient_id = $1`,
		patientID,
	).Bind(ctx, s.db, &rows)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.EmergencyContacts.Bind: %v", err)
		return nil, errors.Wrap(err, "query emergency contacts")
	}
	return rows, nil
}
