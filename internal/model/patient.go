package model

import (
	"github.com/aarondl/null/v8"
)

// Patient is a person whose medication schedule is tracked. Owned by the
// user identified by UserID; caregivers gain access through accepted shares.
type Patient struct {
	ID      string      `boil:"id"`
	UserID  string      `boil:"user_id"`
	Name    string      `boil:"name"`
	Address null.String `boil:"address"`
}

// Profile holds the notification-relevant attributes of a user account.
type Profile struct {
	UserID string      `boil:"user_id"`
	Email  string      `boil:"email"`
	Name   null.String `boil:"full_name"`
	Phone  null.String `boil:"phone"`

	// VacationMode suppresses all missed-dose pushes for the user. It must
	// be honored before any delivery-token lookup.
	VacationMode bool `boil:"vacation_mode"`
}

// EmergencyContact is a person to be emailed on an SOS alert. The phone
// number is stored AES-GCM encrypted at rest.
type EmergencyContact struct {
	PatientID      string      `boil:"patient_id"`
	Name           string      `boil:"name"`
	Email          null.String `boil:"email"`
	PhoneEncrypted null.String `boil:"phone_encrypted"`
}
