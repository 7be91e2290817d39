package model

import "math"

// WeeklyStatRow is one caregiver x patient aggregate from the
// get_weekly_stats data-store call.
type WeeklyStatRow struct {
	CaregiverEmail string `boil:"caregiver_email"`
	CaregiverName  string `boil:"caregiver_name"`
	PatientID      string `boil:"patient_id"`
	PatientName    string `boil:"patient_name"`
	ExpectedDoses  int    `boil:"expected_doses"`
	TakenDoses     int    `boil:"taken_doses"`
}

// AdherenceRate is the taken/expected percentage, rounded, with a floor of
// one expected dose to avoid division by zero.
func (r WeeklyStatRow) AdherenceRate() int {
	expected := r.ExpectedDoses
	if expected < 1 {
		expected = 1
	}
	return int(math.Round(float64(r.TakenDoses) / float64(expected) * 100))
}
