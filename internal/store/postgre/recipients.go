package postgres

import (
	"context"
	"database/sql"

	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/friendsofgo/errors"

	"adherence-srv/internal/model"
	postgresPkg "adherence-srv/pkg/postgre"
)

// ProfilesByUserIDs returns the profiles for the given users keyed by user
// id. Missing profiles are simply absent from the map.
func (s *Store) ProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]model.Profile, error) {
	if len(userIDs) == 0 {
		return map[string]model.Profile{}, nil
	}
	if err := postgresPkg.ValidateUUIDs(userIDs); err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.ProfilesByUserIDs.ValidateUUIDs: %v", err)
		return nil, err
	}

	var rows []model.Profile
	err := queries.Raw(
		`SELECT user_id, email, full_name, phone, vacation_mode
		   FROM profiles
		  WHERE user_id IN (`+postgresPkg.InPlaceholders(len(userIDs), 1)+`)`,
		postgresPkg.ToInterfaceSlice(userIDs)...,
	).Bind(ctx, s.db, &rows)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.ProfilesByUserIDs.Bind: %v", err)
		return nil, errors.Wrap(err, "query profiles")
	}

	out := make(map[string]model.Profile, len(rows))
	for _, p := range rows {
		out[p.UserID] = p
	}
	return out, nil
}

// Profile returns a single user profile.
func (s *Store) Profile(ctx context.Context, userID string) (model.Profile, error) {
	if err := postgresPkg.IsUUID(userID); err != nil {
		return model.Profile{}, err
	}

	var p model.Profile
	err := queries.Raw(
		`SELECT user_id, email, full_name, phone, vacation_mode
		   FROM profiles WHERE user_id = $1`,
		userID,
	).Bind(ctx, s.db, &p)
	if err == sql.ErrNoRows {
		return model.Profile{}, ErrNotFound
	}
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.Profile.Bind: %v", err)
		return model.Profile{}, errors.Wrap(err, "query profile")
	}
	return p, nil
}

// IdentityPhone is the identity-provider fallback used when the profile has
// no phone number on file.
func (s *Store) IdentityPhone(ctx context.Context, userID string) (string, error) {
	if err := postgresPkg.IsUUID(userID); err != nil {
		return "", err
	}

	var row struct {
		Phone string `boil:"phone"`
	}
	err := queries.Raw(
		`SELECT COALESCE(phone, '') AS phone FROM auth_identities WHERE user_id = $1`,
		userID,
	).Bind(ctx, s.db, &row)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.IdentityPhone.Bind: %v", err)
		return "", errors.Wrap(err, "query identity phone")
	}
	return row.Phone, nil
}

// Patient returns one patient record.
func (s *Store) Patient(ctx context.Context, patientID string) (model.Patient, error) {
	if err := postgresPkg.IsUUID(patientID); err != nil {
		return model.Patient{}, err
	}

	var p model.Patient
	err := queries.Raw(
		`SELECT id, user_id, name, address FROM patients WHERE id = $1`,
		patientID,
	).Bind(ctx, s.db, &p)
	if err == sql.ErrNoRows {
		return model.Patient{}, ErrNotFound
	}
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.Patient.Bind: %v", err)
		return model.Patient{}, errors.Wrap(err, "query patient")
	}
	return p, nil
}

// AcceptedCaregiverIDs resolves the user ids of caregivers with an accepted
// share on the patient.
func (s *Store) AcceptedCaregiverIDs(ctx context.Context, patientID string) ([]string, error) {
	if err := postgresPkg.IsUUID(patientID); err != nil {
		return nil, err
	}

	var rows []struct {
		UserID string `boil:"caregiver_user_id"`
	}
	err := queries.Raw(
		`SELECT caregiver_user_id FROM patient_shares
		  WHERE patient_id = $1 AND status = 'accepted'`,
		patientID,
	).Bind(ctx, s.db, &rows)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.AcceptedCaregiverIDs.Bind: %v", err)
		return nil, errors.Wrap(err, "query caregiver shares")
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	return ids, nil
}

// AcceptedCaregivers resolves accepted caregivers with their profile email
// and name.
func (s *Store) AcceptedCaregivers(ctx context.Context, patientID string) ([]model.Recipient, error) {
	if err := postgresPkg.IsUUID(patientID); err != nil {
		return nil, err
	}

	var rows []struct {
		UserID string `boil:"user_id"`
		Email  string `boil:"email"`
		Name   string `boil:"name"`
	}
	err := queries.Raw(
		`SELECT p.user_id, p.email, COALESCE(p.full_name, '') AS name
		   FROM patient_shares ps
		   JOIN profiles p ON p.user_id = ps.caregiver_user_id
		  WHERE ps.patient_id = $1 AND ps.status = 'accepted'`,
		patientID,
	).Bind(ctx, s.db, &rows)
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.AcceptedCaregivers.Bind: %v", err)
		return nil, errors.Wrap(err, "query accepted caregivers")
	}

	out := make([]model.Recipient, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Recipient{
			UserID: r.UserID,
			Email:  r.Email,
			Name:   r.Name,
			Role:   model.RoleCaregiver,
		})
	}
	return out, nil
}

// OwnerRecipient resolves the patient's owning user as a recipient.
func (s *Store) OwnerRecipient(ctx context.Context, patientID string) (model.Recipient, error) {
	if err := postgresPkg.IsUUID(patientID); err != nil {
		return model.Recipient{}, err
	}

	var row struct {
		UserID string `boil:"user_id"`
		Email  string `boil:"email"`
		Name   string `boil:"name"`
	}
	err := queries.Raw(
		`SELECT p.user_id, p.email, COALESCE(p.full_name, '') AS name
		   FROM patients pt
		   JOIN profiles p ON p.user_id = pt.user_id
		  WHERE pt.id = $1`,
		patientID,
	).Bind(ctx, s.db, &row)
	if err == sql.ErrNoRows {
		return model.Recipient{}, ErrNotFound
	}
	if err != nil {
		s.l.Errorf(ctx, "internal.store.postgres.OwnerRecipient.Bind: %v", err)
		return model.Recipient{}, errors.Wrap(err, "query owner recipient")
	}

	return model.Recipient{
		UserID: row.UserID,
		Email:  row.Email,
		Name:   row.Name,
		Role:   model.RoleOwner,
	}, nil
}
