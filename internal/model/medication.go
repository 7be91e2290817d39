package model

import (
	"math"

	"github.com/aarondl/null/v8"
)

// Medication is a tracked drug with its current stock snapshot.
type Medication struct {
	ID            string      `boil:"id"`
	PatientID     string      `boil:"patient_id"`
	Name          string      `boil:"name"`
	Quantity      float64     `boil:"quantity"`
	DailyUsage    float64     `boil:"daily_usage"`
	PharmacyEmail null.String `boil:"pharmacy_email"`
}

// DaysRemaining returns the projected days of supply. The second return is
// false when DailyUsage is not positive, in which case the value is
// undefined and stock checks must skip the medication.
func (m Medication) DaysRemaining() (float64, bool) {
	if m.DailyUsage <= 0 {
		return 0, false
	}
	return m.Quantity / m.DailyUsage, true
}

// SuggestedRefillQuantity is a 30-day supply rounded up to a whole unit.
func (m Medication) SuggestedRefillQuantity() int {
	if m.DailyUsage <= 0 {
		return 0
	}
	return int(math.Ceil(m.DailyUsage * 30))
}

// MissedDose is one scheduled dose with no matching consumption record,
// as returned by the get_missed_doses data-store call.
type MissedDose struct {
	PrescriptionID string `boil:"prescription_id"`
	PatientID      string `boil:"patient_id"`
	PatientName    string `boil:"patient_name"`
	PatientUserID  string `boil:"patient_user_id"`
	MedicationName string `boil:"medication_name"`
}
