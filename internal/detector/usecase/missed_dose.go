package usecase

import (
	"context"
	"fmt"
	"time"

	"adherence-srv/internal/detector"
	"adherence-srv/internal/model"
	"adherence-srv/pkg/fcm"
)

// reminderTier parameterizes one pass of the missed-dose scan. The patient
// nudge and the caregiver escalation are the same scan at different delays
// with different targets and wording.
type reminderTier struct {
	kind  model.AlertKind
	delay time.Duration

	// targets maps a missed dose to the user ids that should be nudged.
	targets func(ctx context.Context, dose model.MissedDose) ([]string, error)

	// compose builds the push for one target user from their missed doses.
	compose func(doses []model.MissedDose) fcm.Notification
}

func (uc *implUseCase) RunReminderTiers(ctx context.Context) (*detector.ReminderSummary, error) {
	settings, err := uc.settings()
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.RunReminderTiers.settings: %v", err)
		return nil, detector.ErrSettingsUnavailable
	}

	now := uc.clock().In(uc.loc)
	tiers := []reminderTier{
		{
			kind:  model.AlertKindMissedDose,
			delay: settings.ReminderDelay(),
			targets: func(_ context.Context, dose model.MissedDose) ([]string, error) {
				return []string{dose.PatientUserID}, nil
			},
			compose: composePatientReminder,
		},
		{
			kind:  model.AlertKindCaregiverEscalation,
			delay: settings.EscalationDelay(),
			targets: func(ctx context.Context, dose model.MissedDose) ([]string, error) {
				return uc.store.AcceptedCaregiverIDs(ctx, dose.PatientID)
			},
			compose: composeCaregiverReminder,
		},
	}

	summary := &detector.ReminderSummary{RanAt: now}
	for _, tier := range tiers {
		ts, err := uc.runReminderTier(ctx, now, tier)
		if err != nil {
			return nil, err
		}
		summary.Tiers = append(summary.Tiers, *ts)
	}

	return summary, nil
}

// runReminderTier scans for doses whose schedule crossed this tier's delay
// within the current minute bucket and pushes to the tier's targets. The
// per-minute cadence is the dedup mechanism here: each (dose, tier) pair
// matches the target minute exactly once.
func (uc *implUseCase) runReminderTier(ctx context.Context, now time.Time, tier reminderTier) (*detector.TierSummary, error) {
	target := now.Add(-tier.delay)
	targetTime := target.Format("15:04")
	targetDate := target.Format("2006-01-02")

	summary := &detector.TierSummary{Kind: string(tier.kind)}

	missed, err := uc.store.MissedDoses(ctx, targetTime, targetDate)
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.runReminderTier.MissedDoses: kind=%s: %v", tier.kind, err)
		return nil, err
	}
	summary.Doses = len(missed)
	if len(missed) == 0 {
		return summary, nil
	}

	// Group doses per target user before any token lookup.
	byUser := make(map[string][]model.MissedDose)
	order := make([]string, 0)
	for _, dose := range missed {
		userIDs, err := tier.targets(ctx, dose)
		if err != nil {
			uc.l.Errorf(ctx, "internal.detector.usecase.runReminderTier.targets: prescription=%s: %v", dose.PrescriptionID, err)
			continue
		}
		for _, userID := range userIDs {
			if _, seen := byUser[userID]; !seen {
				order = append(order, userID)
			}
			byUser[userID] = append(byUser[userID], dose)
		}
	}

	profiles, err := uc.store.ProfilesByUserIDs(ctx, order)
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.runReminderTier.ProfilesByUserIDs: %v", err)
		return nil, err
	}

	for _, userID := range order {
		// Vacation mode is honored before any delivery-token lookup.
		if profiles[userID].VacationMode {
			summary.Suppressed++
			uc.l.Debugf(ctx, "internal.detector.usecase.runReminderTier: vacation mode, suppressing user=%s kind=%s", userID, tier.kind)
			continue
		}

		notification := tier.compose(byUser[userID])
		report, err := uc.dispatch.PushToUsers(ctx, []string{userID}, notification)
		if err != nil {
			uc.l.Errorf(ctx, "internal.detector.usecase.runReminderTier.PushToUsers: user=%s kind=%s: %v", userID, tier.kind, err)
			continue
		}
		if report.Skipped {
			// No tokens for the user: nothing went out, don't report it as
			// a delivered nudge.
			summary.Skipped++
			continue
		}
		summary.Notified++
	}

	return summary, nil
}

func composePatientReminder(doses []model.MissedDose) fcm.Notification {
	body := fmt.Sprintf("You have %d doses still to take.", len(doses))
	if len(doses) == 1 {
		body = fmt.Sprintf("Looks like %s for %s was missed.", doses[0].MedicationName, doses[0].PatientName)
	}
	return fcm.Notification{
		Title: "Missed dose reminder",
		Body:  body,
		Data: map[string]string{
			"kind":  string(model.AlertKindMissedDose),
			"count": fmt.Sprintf("%d", len(doses)),
		},
	}
}

func composeCaregiverReminder(doses []model.MissedDose) fcm.Notification {
	body := fmt.Sprintf("%d doses you care for are still not taken.", len(doses))
	if len(doses) == 1 {
		body = fmt.Sprintf("%s has still not taken %s.", doses[0].PatientName, doses[0].MedicationName)
	}
	return fcm.Notification{
		Title: "A patient needs a check-in",
		Body:  body,
		Data: map[string]string{
			"kind":  string(model.AlertKindCaregiverEscalation),
			"count": fmt.Sprintf("%d", len(doses)),
		},
	}
}
