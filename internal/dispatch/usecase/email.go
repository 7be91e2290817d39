package usecase

import (
	"context"

	"adherence-srv/internal/dispatch"
	"adherence-srv/pkg/mailer"
)

// EmailEach sends one transactional email per message. Failures are logged
// with the recipient for manual replay and counted; they never abort the
// remaining sends.
func (uc *implUseCase) EmailEach(ctx context.Context, msgs []mailer.Message) dispatch.EmailReport {
	report := dispatch.EmailReport{}

	if uc.mailer == nil {
		if len(msgs) > 0 {
			uc.l.Warnf(ctx, "internal.dispatch.usecase.EmailEach: email gateway disabled, dropping %d messages", len(msgs))
		}
		report.Failed = len(msgs)
		return report
	}

	for _, msg := range msgs {
		if err := uc.mailer.Send(ctx, msg); err != nil {
			uc.l.Errorf(ctx, "internal.dispatch.usecase.EmailEach.Send: to=%s subject=%q: %v", msg.To, msg.Subject, err)
			report.Failed++
			continue
		}
		report.Sent++
	}

	return report
}
