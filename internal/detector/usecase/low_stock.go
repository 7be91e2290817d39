package usecase

import (
	"context"
	"fmt"
	"strings"

	"adherence-srv/config"
	"adherence-srv/internal/detector"
	"adherence-srv/internal/model"
	"adherence-srv/pkg/fcm"
)

// CheckMedication is the inline low-stock path, invoked whenever
// stock-affecting state changes.
func (uc *implUseCase) CheckMedication(ctx context.Context, medicationID string) (*detector.StockSummary, error) {
	settings, err := uc.settings()
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.CheckMedication.settings: %v", err)
		return nil, detector.ErrSettingsUnavailable
	}

	med, err := uc.store.Medication(ctx, medicationID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.CheckMedication.Medication: id=%s: %v", medicationID, err)
		return nil, err
	}

	summary := &detector.StockSummary{RanAt: uc.clock().In(uc.loc), Checked: 1}
	uc.checkStock(ctx, settings, med, summary)
	return summary, nil
}

// RunStockSweep is the once-daily scan over every medication. Beyond the
// per-medication emails it pushes one summary per owner, worst case first.
func (uc *implUseCase) RunStockSweep(ctx context.Context) (*detector.StockSummary, error) {
	settings, err := uc.settings()
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.RunStockSweep.settings: %v", err)
		return nil, detector.ErrSettingsUnavailable
	}

	meds, err := uc.store.Medications(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.RunStockSweep.Medications: %v", err)
		return nil, err
	}

	summary := &detector.StockSummary{RanAt: uc.clock().In(uc.loc), Checked: len(meds)}

	type ownerAlerts struct {
		zero []string // medication names with no stock left
		low  []string // medication names below threshold
	}
	byOwner := make(map[string]*ownerAlerts)
	ownerOrder := make([]string, 0)

	for _, med := range meds {
		alerted := uc.checkStock(ctx, settings, med, summary)
		if !alerted {
			continue
		}

		owner, err := uc.store.OwnerRecipient(ctx, med.PatientID)
		if err != nil {
			uc.l.Errorf(ctx, "internal.detector.usecase.RunStockSweep.OwnerRecipient: medication=%s: %v", med.ID, err)
			continue
		}
		if _, seen := byOwner[owner.UserID]; !seen {
			byOwner[owner.UserID] = &ownerAlerts{}
			ownerOrder = append(ownerOrder, owner.UserID)
		}
		if med.Quantity <= 0 {
			summary.ZeroStock++
			byOwner[owner.UserID].zero = append(byOwner[owner.UserID].zero, med.Name)
		} else {
			summary.LowStock++
			byOwner[owner.UserID].low = append(byOwner[owner.UserID].low, med.Name)
		}
	}

	for _, userID := range ownerOrder {
		alerts := byOwner[userID]
		// Zero stock leads the body: it is the worse case.
		var parts []string
		if len(alerts.zero) > 0 {
			parts = append(parts, fmt.Sprintf("Out of stock: %s.", strings.Join(alerts.zero, ", ")))
		}
		if len(alerts.low) > 0 {
			parts = append(parts, fmt.Sprintf("Running low: %s.", strings.Join(alerts.low, ", ")))
		}

		n := fcm.Notification{
			Title: "Medication stock check",
			Body:  strings.Join(parts, " "),
			Data:  map[string]string{"kind": string(model.AlertKindLowStock)},
		}
		if _, err := uc.dispatch.PushToUsers(ctx, []string{userID}, n); err != nil {
			uc.l.Errorf(ctx, "internal.detector.usecase.RunStockSweep.PushToUsers: user=%s: %v", userID, err)
		}
	}

	return summary, nil
}

// checkStock runs the idempotent low-stock check for one medication and
// returns whether an alert fired. The ledger insert happens before any send:
// whichever of the concurrent triggers (inline change, daily sweep) gets the
// row sends the one alert of the day, everyone else backs off.
func (uc *implUseCase) checkStock(ctx context.Context, settings config.AlertSettings, med model.Medication, summary *detector.StockSummary) bool {
	days, ok := med.DaysRemaining()
	if !ok {
		// daysRemaining is undefined without a positive daily usage.
		return false
	}
	if days >= float64(settings.LowStockThresholdDays) {
		return false
	}

	today := uc.clock().In(uc.loc).Format("2006-01-02")
	created, err := uc.store.InsertAlertLog(ctx, model.AlertLogEntry{
		SubjectID: med.ID,
		Kind:      model.AlertKindLowStock,
		AlertDate: today,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.checkStock.InsertAlertLog: medication=%s: %v", med.ID, err)
		return false
	}
	if !created {
		summary.Deduped++
		return false
	}

	recipients, err := uc.stockRecipients(ctx, med.PatientID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.checkStock.stockRecipients: medication=%s: %v", med.ID, err)
		return false
	}

	patient, err := uc.store.Patient(ctx, med.PatientID)
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.checkStock.Patient: medication=%s: %v", med.ID, err)
		patient = model.Patient{Name: "your patient"}
	}

	msgs := composeLowStockEmails(recipients, patient, med, days)
	report := uc.dispatch.EmailEach(ctx, msgs)
	summary.Alerted++
	summary.EmailsSent += report.Sent

	uc.l.Infof(ctx, "internal.detector.usecase.checkStock: medication=%s days_remaining=%.1f sent=%d failed=%d",
		med.ID, days, report.Sent, report.Failed)
	return true
}

// stockRecipients resolves owner plus accepted caregivers, deduplicated by
// email. Anyone without an email on file is dropped rather than handed to
// the gateway as a guaranteed failure.
func (uc *implUseCase) stockRecipients(ctx context.Context, patientID string) ([]model.Recipient, error) {
	owner, err := uc.store.OwnerRecipient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	caregivers, err := uc.store.AcceptedCaregivers(ctx, patientID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := make([]model.Recipient, 0, 1+len(caregivers))
	if owner.Email != "" {
		seen[owner.Email] = struct{}{}
		out = append(out, owner)
	}
	for _, c := range caregivers {
		if _, dup := seen[c.Email]; dup || c.Email == "" {
			continue
		}
		seen[c.Email] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}
