package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"adherence-srv/internal/detector"
	"adherence-srv/internal/model"
	"adherence-srv/pkg/mailer"
)

// digestRecipient is one caregiver's slice of the weekly aggregate, grouped
// from the flat stat rows in query order.
type digestRecipient struct {
	email string
	name  string
	rows  []model.WeeklyStatRow
}

func (uc *implUseCase) RunWeeklyDigest(ctx context.Context) (*detector.DigestSummary, error) {
	settings, err := uc.settings()
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.RunWeeklyDigest.settings: %v", err)
		return nil, detector.ErrSettingsUnavailable
	}

	start, end := previousWeek(uc.clock().In(uc.loc))
	summary := &detector.DigestSummary{WeekStart: start, WeekEnd: end}

	rows, err := uc.store.WeeklyStats(ctx, start, end)
	if err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.RunWeeklyDigest.WeeklyStats: %v", err)
		return nil, err
	}

	recipients := groupByCaregiver(rows)
	summary.Eligible = len(recipients)

	for i := 0; i < len(recipients); i += settings.DigestBatchSize {
		if i > 0 {
			uc.sleep(settings.DigestBatchDelay)
		}
		batch := recipients[i:min(i+settings.DigestBatchSize, len(recipients))]
		summary.Batches++

		sent, failed := uc.sendDigestBatch(ctx, batch, start, end)
		summary.Sent += sent
		summary.Errors += failed
	}

	audit := model.WeeklyAudit{
		WeekStart: start,
		WeekEnd:   end,
		Eligible:  summary.Eligible,
		Sent:      summary.Sent,
		Errors:    summary.Errors,
	}
	if err := uc.store.InsertWeeklyAudit(ctx, audit); err != nil {
		uc.l.Errorf(ctx, "internal.detector.usecase.RunWeeklyDigest.InsertWeeklyAudit: %v", err)
		return nil, err
	}

	if uc.reports != nil {
		if err := uc.reports.PutDigestReport(ctx, start, summary); err != nil {
			// archival is best effort, the audit row is the record
			uc.l.Warnf(ctx, "internal.detector.usecase.RunWeeklyDigest.PutDigestReport: %v", err)
		}
	}

	uc.l.Infof(ctx, "internal.detector.usecase.RunWeeklyDigest: week=%s eligible=%d sent=%d errors=%d",
		start.Format("2006-01-02"), summary.Eligible, summary.Sent, summary.Errors)
	return summary, nil
}

// sendDigestBatch sends one batch concurrently. Every recipient resolves to
// exactly one sent or one failed count.
func (uc *implUseCase) sendDigestBatch(ctx context.Context, batch []digestRecipient, start, end time.Time) (sent, failed int) {
	results := make(chan bool, len(batch))
	var wg sync.WaitGroup
	for _, r := range batch {
		wg.Add(1)
		go func(r digestRecipient) {
			defer wg.Done()
			report := uc.dispatch.EmailEach(ctx, []mailer.Message{composeDigestEmail(r, start, end)})
			results <- report.Failed == 0
		}(r)
	}
	wg.Wait()
	close(results)

	for ok := range results {
		if ok {
			sent++
		} else {
			failed++
		}
	}
	return sent, failed
}

// previousWeek returns the most recent complete Monday-Sunday window before
// the given time, regardless of which weekday the run lands on.
func previousWeek(now time.Time) (start, end time.Time) {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	thisMonday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -daysSinceMonday)
	start = thisMonday.AddDate(0, 0, -7)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// groupByCaregiver folds the flat rows into one digest per caregiver email,
// preserving query order, and drops caregivers whose patients had nothing
// scheduled all week.
func groupByCaregiver(rows []model.WeeklyStatRow) []digestRecipient {
	var order []string
	byEmail := make(map[string]*digestRecipient)
	for _, row := range rows {
		r, ok := byEmail[row.CaregiverEmail]
		if !ok {
			r = &digestRecipient{email: row.CaregiverEmail, name: row.CaregiverName}
			byEmail[row.CaregiverEmail] = r
			order = append(order, row.CaregiverEmail)
		}
		r.rows = append(r.rows, row)
	}

	recipients := make([]digestRecipient, 0, len(order))
	for _, email := range order {
		r := byEmail[email]
		expected := 0
		for _, row := range r.rows {
			expected += row.ExpectedDoses
		}
		if expected == 0 {
			continue
		}
		recipients = append(recipients, *r)
	}
	return recipients
}

func composeDigestEmail(r digestRecipient, start, end time.Time) mailer.Message {
	name := r.name
	if name == "" {
		name = "there"
	}

	var html strings.Builder
	_ = digestTemplate.Execute(&html, struct {
		CaregiverName string
		WeekStart     string
		WeekEnd       string
		Rows          []model.WeeklyStatRow
	}{
		CaregiverName: name,
		WeekStart:     start.Format("Jan 2"),
		WeekEnd:       end.Format("Jan 2, 2006"),
		Rows:          r.rows,
	})

	var text strings.Builder
	fmt.Fprintf(&text, "Adherence summary %s - %s\n", start.Format("2006-01-02"), end.Format("2006-01-02"))
	for _, row := range r.rows {
		fmt.Fprintf(&text, "%s: %d/%d doses (%d%%)\n",
			row.PatientName, row.TakenDoses, row.ExpectedDoses, row.AdherenceRate())
	}

	return mailer.Message{
		To:       r.email,
		Subject:  fmt.Sprintf("Weekly adherence digest: %s - %s", start.Format("Jan 2"), end.Format("Jan 2")),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}
}
