package model

import (
	"time"

	"github.com/aarondl/null/v8"
)

// EmergencyAlert is one row of the emergency-alert table, delivered to the
// SOS handler through the insert-event subscription. Each row triggers the
// handler at most once.
type EmergencyAlert struct {
	ID          string      `json:"id"`
	PatientID   string      `json:"patient_id"`
	TriggeredBy string      `json:"triggered_by"`
	Message     null.String `json:"message"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Prescription is an active prescription summarized in SOS emails so
// responders know what the patient is taking.
type Prescription struct {
	ID             string      `boil:"id"`
	PatientID      string      `boil:"patient_id"`
	MedicationName string      `boil:"medication_name"`
	Dosage         null.String `boil:"dosage"`
}
