package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"adherence-srv/internal/model"
	"adherence-srv/internal/sos"
	"adherence-srv/pkg/fcm"
	"adherence-srv/pkg/mailer"
)

const (
	placeholderName    = "Unknown patient"
	placeholderPhone   = "No phone number on file"
	placeholderAddress = "No address on file"
)

// alertContext is everything the alert emails and push need, resolved in
// parallel. Any lookup may have failed; fields degrade to placeholders.
type alertContext struct {
	patient       model.Patient
	patientName   string
	triggerName   string
	triggerPhone  string
	prescriptions []model.Prescription
	owner         model.Recipient
	ownerOK       bool
	caregivers    []model.Recipient
	contacts      []model.EmergencyContact
}

func (uc *implUseCase) HandleAlert(ctx context.Context, alert model.EmergencyAlert) (*sos.Summary, error) {
	summary := &sos.Summary{AlertID: alert.ID}

	// The ledger makes redelivered events harmless: only the first insert
	// for this alert row proceeds to send anything.
	created, err := uc.store.InsertAlertLog(ctx, model.AlertLogEntry{
		SubjectID: alert.ID,
		Kind:      model.AlertKindSOS,
		AlertDate: alert.CreatedAt.Format("2006-01-02"),
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.sos.usecase.HandleAlert.InsertAlertLog: alert=%s: %v", alert.ID, err)
		return nil, err
	}
	if !created {
		uc.l.Warnf(ctx, "internal.sos.usecase.HandleAlert: alert=%s already handled, skipping", alert.ID)
		summary.Duplicate = true
		return summary, nil
	}

	ac := uc.resolveAlertContext(ctx, alert)

	msgs := uc.composeAlertEmails(ctx, alert, ac)
	summary.Recipients = len(msgs)

	report := uc.dispatch.EmailEach(ctx, msgs)
	summary.EmailsSent = report.Sent
	summary.EmailsFailed = report.Failed

	uc.pushAlert(ctx, alert, ac, summary)

	uc.l.Infof(ctx, "internal.sos.usecase.HandleAlert: alert=%s recipients=%d emails_sent=%d emails_failed=%d push_tokens=%d",
		alert.ID, summary.Recipients, summary.EmailsSent, summary.EmailsFailed, summary.PushTokens)
	return summary, nil
}

// resolveAlertContext runs the lookups in parallel. A failed lookup is
// logged and leaves its placeholder in place; the alert always goes out.
func (uc *implUseCase) resolveAlertContext(ctx context.Context, alert model.EmergencyAlert) *alertContext {
	ac := &alertContext{
		patientName:  placeholderName,
		triggerName:  placeholderName,
		triggerPhone: placeholderPhone,
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				uc.l.Warnf(ctx, "internal.sos.usecase.resolveAlertContext.%s: alert=%s: %v", name, alert.ID, err)
			}
		}()
	}

	run("Patient", func() error {
		p, err := uc.store.Patient(ctx, alert.PatientID)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		ac.patient = p
		if p.Name != "" {
			ac.patientName = p.Name
		}
		return nil
	})

	run("Profile", func() error {
		profile, err := uc.store.Profile(ctx, alert.TriggeredBy)
		if err != nil {
			return err
		}
		mu.Lock()
		if profile.Name.Valid && profile.Name.String != "" {
			ac.triggerName = profile.Name.String
		}
		hasPhone := profile.Phone.Valid && profile.Phone.String != ""
		if hasPhone {
			ac.triggerPhone = formatPhone(profile.Phone.String)
		}
		mu.Unlock()
		if hasPhone {
			return nil
		}

		// profile has no phone, fall back to the identity provider record
		phone, err := uc.store.IdentityPhone(ctx, alert.TriggeredBy)
		if err != nil || phone == "" {
			return err
		}
		mu.Lock()
		ac.triggerPhone = formatPhone(phone)
		mu.Unlock()
		return nil
	})

	run("ActivePrescriptions", func() error {
		rx, err := uc.store.ActivePrescriptions(ctx, alert.PatientID)
		if err != nil {
			return err
		}
		mu.Lock()
		ac.prescriptions = rx
		mu.Unlock()
		return nil
	})

	run("OwnerRecipient", func() error {
		owner, err := uc.store.OwnerRecipient(ctx, alert.PatientID)
		if err != nil {
			return err
		}
		mu.Lock()
		ac.owner = owner
		ac.ownerOK = true
		mu.Unlock()
		return nil
	})

	run("AcceptedCaregivers", func() error {
		cgs, err := uc.store.AcceptedCaregivers(ctx, alert.PatientID)
		if err != nil {
			return err
		}
		mu.Lock()
		ac.caregivers = cgs
		mu.Unlock()
		return nil
	})

	run("EmergencyContacts", func() error {
		contacts, err := uc.store.EmergencyContacts(ctx, alert.PatientID)
		if err != nil {
			return err
		}
		mu.Lock()
		ac.contacts = contacts
		mu.Unlock()
		return nil
	})

	wg.Wait()
	return ac
}

// composeAlertEmails builds one personalized message per valid, unique
// address: owner, then caregivers, then emergency contacts.
func (uc *implUseCase) composeAlertEmails(ctx context.Context, alert model.EmergencyAlert, ac *alertContext) []mailer.Message {
	type target struct {
		email string
		name  string
	}
	var targets []target
	seen := make(map[string]struct{})
	add := func(email, name string) {
		if _, err := mail.ParseAddress(email); err != nil {
			if email != "" {
				uc.l.Warnf(ctx, "internal.sos.usecase.composeAlertEmails: alert=%s dropping invalid address %q", alert.ID, email)
			}
			return
		}
		key := strings.ToLower(email)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		targets = append(targets, target{email: email, name: name})
	}

	if ac.ownerOK {
		add(ac.owner.Email, ac.owner.Name)
	}
	for _, c := range ac.caregivers {
		add(c.Email, c.Name)
	}
	for _, c := range ac.contacts {
		if c.Email.Valid {
			add(c.Email.String, c.Name)
		}
	}

	body := uc.alertEmailBody(ctx, alert, ac)
	msgs := make([]mailer.Message, 0, len(targets))
	for _, t := range targets {
		greeting := t.name
		if greeting == "" {
			greeting = "there"
		}
		msgs = append(msgs, mailer.Message{
			To:       t.email,
			Subject:  fmt.Sprintf("EMERGENCY: SOS alert for %s", ac.patientName),
			TextBody: fmt.Sprintf("Hi %s,\n\n%s", greeting, body),
			HTMLBody: fmt.Sprintf("<p>Hi %s,</p><pre>%s</pre>", greeting, body),
		})
	}
	return msgs
}

func (uc *implUseCase) alertEmailBody(ctx context.Context, alert model.EmergencyAlert, ac *alertContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "An SOS alert was triggered for %s at %s.\n\n", ac.patientName, alert.CreatedAt.Format("15:04, Jan 2 2006"))
	fmt.Fprintf(&b, "Triggered by: %s\n", ac.triggerName)
	fmt.Fprintf(&b, "Phone: %s\n", ac.triggerPhone)

	address := placeholderAddress
	if ac.patient.Address.Valid && ac.patient.Address.String != "" {
		address = ac.patient.Address.String
	}
	fmt.Fprintf(&b, "Address: %s\n", address)

	if alert.Message.Valid && alert.Message.String != "" {
		fmt.Fprintf(&b, "Message: %s\n", alert.Message.String)
	}

	if len(ac.prescriptions) > 0 {
		b.WriteString("\nCurrent medications:\n")
		for _, rx := range ac.prescriptions {
			if rx.Dosage.Valid && rx.Dosage.String != "" {
				fmt.Fprintf(&b, "- %s (%s)\n", rx.MedicationName, rx.Dosage.String)
			} else {
				fmt.Fprintf(&b, "- %s\n", rx.MedicationName)
			}
		}
	}

	b.WriteString("\nEmergency contacts:\n")
	if len(ac.contacts) == 0 {
		b.WriteString("- none on file\n")
	}
	for _, c := range ac.contacts {
		phone := placeholderPhone
		if c.PhoneEncrypted.Valid && c.PhoneEncrypted.String != "" {
			decrypted, err := uc.enc.Decrypt(c.PhoneEncrypted.String)
			if err != nil {
				uc.l.Warnf(ctx, "internal.sos.usecase.alertEmailBody.Decrypt: alert=%s contact=%s: %v", alert.ID, c.Name, err)
			} else {
				phone = formatPhone(decrypted)
			}
		}
		fmt.Fprintf(&b, "- %s: %s\n", c.Name, phone)
	}
	return b.String()
}

// pushAlert sends the single multicast push to every device of the owner and
// the accepted caregivers.
func (uc *implUseCase) pushAlert(ctx context.Context, alert model.EmergencyAlert, ac *alertContext, summary *sos.Summary) {
	var userIDs []string
	if ac.ownerOK {
		userIDs = append(userIDs, ac.owner.UserID)
	}
	for _, c := range ac.caregivers {
		userIDs = append(userIDs, c.UserID)
	}
	if len(userIDs) == 0 {
		return
	}

	tokens, err := uc.store.TokensForUsers(ctx, userIDs)
	if err != nil {
		uc.l.Errorf(ctx, "internal.sos.usecase.pushAlert.TokensForUsers: alert=%s: %v", alert.ID, err)
		return
	}
	raw := make([]string, 0, len(tokens))
	for _, t := range tokens {
		raw = append(raw, t.Token)
	}

	address := placeholderAddress
	if ac.patient.Address.Valid && ac.patient.Address.String != "" {
		address = ac.patient.Address.String
	}
	n := fcm.Notification{
		Title: fmt.Sprintf("SOS: %s needs help", ac.patientName),
		Body:  fmt.Sprintf("Triggered by %s. Phone: %s. Address: %s", ac.triggerName, ac.triggerPhone, address),
		Data: map[string]string{
			"kind":       string(model.AlertKindSOS),
			"alert_id":   alert.ID,
			"patient_id": alert.PatientID,
		},
	}

	report, err := uc.dispatch.PushToTokens(ctx, raw, n)
	if err != nil {
		uc.l.Errorf(ctx, "internal.sos.usecase.pushAlert.PushToTokens: alert=%s: %v", alert.ID, err)
		return
	}
	summary.PushTokens = report.Requested
	summary.PushFailed = report.Failed
}

// formatPhone normalizes a stored phone number for display: digits grouped,
// leading + preserved.
func formatPhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return placeholderPhone
	}
	var b strings.Builder
	for i, r := range trimmed {
		if r >= '0' && r <= '9' || (i == 0 && r == '+') {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" || digits == "+" {
		return trimmed
	}
	return digits
}
