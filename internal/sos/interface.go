package sos

import (
	"context"

	"adherence-srv/internal/model"
)

// UseCase handles one emergency alert end to end: resolve everyone who
// should know, email them, and push to their devices. Invoked by the
// insert-event listener, at most once per inserted alert row.
type UseCase interface {
	HandleAlert(ctx context.Context, alert model.EmergencyAlert) (*Summary, error)
}

// Store is the slice of the data store the SOS handler reads.
type Store interface {
	Patient(ctx context.Context, patientID string) (model.Patient, error)
	Profile(ctx context.Context, userID string) (model.Profile, error)
	IdentityPhone(ctx context.Context, userID string) (string, error)
	ActivePrescriptions(ctx context.Context, patientID string) ([]model.Prescription, error)
	OwnerRecipient(ctx context.Context, patientID string) (model.Recipient, error)
	AcceptedCaregivers(ctx context.Context, patientID string) ([]model.Recipient, error)
	EmergencyContacts(ctx context.Context, patientID string) ([]model.EmergencyContact, error)
	TokensForUsers(ctx context.Context, userIDs []string) ([]model.DeliveryToken, error)
	InsertAlertLog(ctx context.Context, entry model.AlertLogEntry) (bool, error)
}
