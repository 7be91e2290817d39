package usecase

import (
	"context"
	"errors"
	"testing"

	"adherence-srv/internal/dispatch"
	"adherence-srv/internal/model"
	"adherence-srv/pkg/fcm"
	"adherence-srv/pkg/log"
	"adherence-srv/pkg/mailer"
)

type fakeStore struct {
	tokens    map[string][]string
	deleted   [][]string
	deleteErr error
}

func (f *fakeStore) TokensForUsers(_ context.Context, userIDs []string) ([]model.DeliveryToken, error) {
	var out []model.DeliveryToken
	for _, id := range userIDs {
		for _, t := range f.tokens[id] {
			out = append(out, model.DeliveryToken{Token: t, UserID: id})
		}
	}
	return out, nil
}

func (f *fakeStore) DeleteTokens(_ context.Context, tokens []string) error {
	f.deleted = append(f.deleted, tokens)
	return f.deleteErr
}

type fakeFcm struct {
	calls   [][]string
	results []fcm.MulticastResult
	err     error
}

func (f *fakeFcm) SendMulticast(_ context.Context, tokens []string, _ fcm.Notification) (*fcm.MulticastResult, error) {
	f.calls = append(f.calls, tokens)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.results) > 0 {
		r := f.results[0]
		f.results = f.results[1:]
		return &r, nil
	}
	return &fcm.MulticastResult{SuccessCount: len(tokens)}, nil
}

type fakeMailer struct {
	sent    []mailer.Message
	failTo  map[string]bool
	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if f.failTo[msg.To] {
		return errors.New("mailbox unavailable")
	}
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestPushToTokens_SkipsEmptySet(t *testing.T) {
	gateway := &fakeFcm{}
	uc := New(log.NewNop(), &fakeStore{}, gateway, &fakeMailer{})

	report, err := uc.PushToTokens(context.Background(), nil, fcm.Notification{Title: "t"})
	if err != nil {
		t.Fatalf("PushToTokens() error = %v", err)
	}
	if !report.Skipped {
		t.Errorf("report.Skipped = false, want true")
	}
	if len(gateway.calls) != 0 {
		t.Errorf("gateway called %d times, want 0", len(gateway.calls))
	}
}

func TestPushToTokens_PartialFailure(t *testing.T) {
	gateway := &fakeFcm{results: []fcm.MulticastResult{{
		SuccessCount: 2,
		FailureCount: 1,
		Errors:       []string{"token c: unavailable"},
	}}}
	uc := New(log.NewNop(), &fakeStore{}, gateway, &fakeMailer{})

	report, err := uc.PushToTokens(context.Background(), []string{"a", "b", "c"}, fcm.Notification{Title: "t"})
	if err != nil {
		t.Fatalf("PushToTokens() error = %v", err)
	}
	if report.Requested != 3 || report.Delivered != 2 || report.Failed != 1 {
		t.Errorf("report = %+v, want requested=3 delivered=2 failed=1", report)
	}
	if len(gateway.calls) != 1 {
		t.Errorf("gateway called %d times, want exactly 1 multicast call", len(gateway.calls))
	}
}

func TestPushToTokens_RetiresInvalidTokens(t *testing.T) {
	store := &fakeStore{}
	gateway := &fakeFcm{results: []fcm.MulticastResult{{
		SuccessCount:  1,
		FailureCount:  1,
		InvalidTokens: []string{"dead"},
	}}}
	uc := New(log.NewNop(), store, gateway, &fakeMailer{})

	report, err := uc.PushToTokens(context.Background(), []string{"live", "dead"}, fcm.Notification{})
	if err != nil {
		t.Fatalf("PushToTokens() error = %v", err)
	}
	if report.Retired != 1 {
		t.Errorf("report.Retired = %d, want 1", report.Retired)
	}
	if len(store.deleted) != 1 || store.deleted[0][0] != "dead" {
		t.Errorf("store delete calls = %v, want [[dead]]", store.deleted)
	}

	// The retired token must not reach the gateway again this run.
	report, err = uc.PushToTokens(context.Background(), []string{"dead"}, fcm.Notification{})
	if err != nil {
		t.Fatalf("PushToTokens() second call error = %v", err)
	}
	if !report.Skipped {
		t.Errorf("second push with only a retired token: Skipped = false, want true")
	}
	if len(gateway.calls) != 1 {
		t.Errorf("gateway called %d times, want 1", len(gateway.calls))
	}
}

func TestPushToTokens_RetirementSurvivesDeleteFailure(t *testing.T) {
	store := &fakeStore{deleteErr: errors.New("connection reset")}
	gateway := &fakeFcm{results: []fcm.MulticastResult{{
		FailureCount:  1,
		InvalidTokens: []string{"dead"},
	}}}
	uc := New(log.NewNop(), store, gateway, &fakeMailer{})

	if _, err := uc.PushToTokens(context.Background(), []string{"dead"}, fcm.Notification{}); err != nil {
		t.Fatalf("PushToTokens() error = %v", err)
	}

	report, err := uc.PushToTokens(context.Background(), []string{"dead"}, fcm.Notification{})
	if err != nil {
		t.Fatalf("PushToTokens() second call error = %v", err)
	}
	if !report.Skipped {
		t.Errorf("retired token re-entered dispatch after failed store delete")
	}
}

func TestPushToUsers_ResolvesTokens(t *testing.T) {
	store := &fakeStore{tokens: map[string][]string{
		"u1": {"t1", "t2"},
		"u2": {"t3"},
	}}
	gateway := &fakeFcm{}
	uc := New(log.NewNop(), store, gateway, &fakeMailer{})

	report, err := uc.PushToUsers(context.Background(), []string{"u1", "u2"}, fcm.Notification{})
	if err != nil {
		t.Fatalf("PushToUsers() error = %v", err)
	}
	if report.Requested != 3 || report.Delivered != 3 {
		t.Errorf("report = %+v, want requested=3 delivered=3", report)
	}
}

func TestEmailEach_FailureDoesNotAbortSiblings(t *testing.T) {
	m := &fakeMailer{failTo: map[string]bool{"b@example.com": true}}
	uc := New(log.NewNop(), &fakeStore{}, &fakeFcm{}, m)

	msgs := []mailer.Message{
		{To: "a@example.com", Subject: "s"},
		{To: "b@example.com", Subject: "s"},
		{To: "c@example.com", Subject: "s"},
	}
	report := uc.EmailEach(context.Background(), msgs)

	if report.Sent != 2 || report.Failed != 1 {
		t.Errorf("report = %+v, want sent=2 failed=1", report)
	}
	if report.Sent+report.Failed != len(msgs) {
		t.Errorf("sent+failed = %d, want %d", report.Sent+report.Failed, len(msgs))
	}
	if len(m.sent) != 2 {
		t.Errorf("mailer delivered %d messages, want 2", len(m.sent))
	}
}

func TestEmailEach_DisabledGatewayCountsFailures(t *testing.T) {
	uc := &implUseCase{l: log.NewNop(), dead: map[string]struct{}{}}

	report := uc.EmailEach(context.Background(), []mailer.Message{{To: "a@example.com"}})
	if report.Sent != 0 || report.Failed != 1 {
		t.Errorf("report = %+v, want sent=0 failed=1", report)
	}
}

var _ dispatch.Store = &fakeStore{}
