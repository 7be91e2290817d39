package usecase

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"adherence-srv/internal/model"
	"adherence-srv/pkg/mailer"
)

var lowStockTemplate = template.Must(template.New("low_stock").Parse(`<html>
<body>
  <p>Hi {{.RecipientName}},</p>
  <p><strong>{{.MedicationName}}</strong> for {{.PatientName}} is running low.</p>
  <ul>
    <li>Current stock: {{printf "%.0f" .Quantity}} units</li>
    <li>Daily usage: {{printf "%.1f" .DailyUsage}} units</li>
    <li>Days remaining: {{printf "%.1f" .DaysRemaining}}</li>
  </ul>
  <p>Suggested refill: {{.RefillQuantity}} units (30-day supply).</p>
  {{if .PharmacyLink}}<p><a href="{{.PharmacyLink}}">Contact the pharmacy</a></p>{{end}}
</body>
</html>`))

var digestTemplate = template.Must(template.New("weekly_digest").Parse(`<html>
<body>
  <p>Hi {{.CaregiverName}},</p>
  <p>Here is the adherence summary for {{.WeekStart}} &ndash; {{.WeekEnd}}:</p>
  <table border="1" cellpadding="4" cellspacing="0">
    <tr><th>Patient</th><th>Taken</th><th>Expected</th><th>Adherence</th></tr>
    {{range .Rows}}
    <tr><td>{{.PatientName}}</td><td>{{.TakenDoses}}</td><td>{{.ExpectedDoses}}</td><td>{{.AdherenceRate}}%</td></tr>
    {{end}}
  </table>
</body>
</html>`))

// composeLowStockEmails builds one personalized message per recipient.
func composeLowStockEmails(recipients []model.Recipient, patient model.Patient, med model.Medication, days float64) []mailer.Message {
	msgs := make([]mailer.Message, 0, len(recipients))
	for _, r := range recipients {
		name := r.Name
		if name == "" {
			name = "there"
		}

		var html strings.Builder
		_ = lowStockTemplate.Execute(&html, struct {
			RecipientName  string
			PatientName    string
			MedicationName string
			Quantity       float64
			DailyUsage     float64
			DaysRemaining  float64
			RefillQuantity int
			PharmacyLink   string
		}{
			RecipientName:  name,
			PatientName:    patient.Name,
			MedicationName: med.Name,
			Quantity:       med.Quantity,
			DailyUsage:     med.DailyUsage,
			DaysRemaining:  days,
			RefillQuantity: med.SuggestedRefillQuantity(),
			PharmacyLink:   pharmacyMailto(med),
		})

		msgs = append(msgs, mailer.Message{
			To:      r.Email,
			Subject: fmt.Sprintf("Low stock: %s (%.1f days left)", med.Name, days),
			HTMLBody: html.String(),
			TextBody: fmt.Sprintf("%s for %s is running low: %.0f units left, about %.1f days. Suggested refill: %d units.",
				med.Name, patient.Name, med.Quantity, days, med.SuggestedRefillQuantity()),
		})
	}
	return msgs
}

// pharmacyMailto builds a prefilled refill request link when the medication
// has a pharmacy contact on file.
func pharmacyMailto(med model.Medication) string {
	if !med.PharmacyEmail.Valid || med.PharmacyEmail.String == "" {
		return ""
	}
	params := url.Values{}
	params.Set("subject", fmt.Sprintf("Refill request: %s", med.Name))
	params.Set("body", fmt.Sprintf("Hello, I would like to request a refill of %s (%d units).",
		med.Name, med.SuggestedRefillQuantity()))
	return "mailto:" + med.PharmacyEmail.String + "?" + params.Encode()
}
