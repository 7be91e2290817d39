package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aarondl/null/v8"

	"adherence-srv/internal/dispatch"
	"adherence-srv/internal/model"
	"adherence-srv/internal/sos"
	"adherence-srv/pkg/fcm"
	"adherence-srv/pkg/log"
	"adherence-srv/pkg/mailer"
)

type fakeStore struct {
	patient    model.Patient
	patientErr error

	profile    model.Profile
	profileErr error

	identityPhone string

	prescriptions []model.Prescription
	owner         model.Recipient
	ownerErr      error
	caregivers    []model.Recipient
	contacts      []model.EmergencyContact
	tokens        []model.DeliveryToken

	mu       sync.Mutex
	alertLog map[string]bool
}

func (f *fakeStore) Patient(_ context.Context, _ string) (model.Patient, error) {
	return f.patient, f.patientErr
}

func (f *fakeStore) Profile(_ context.Context, _ string) (model.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeStore) IdentityPhone(_ context.Context, _ string) (string, error) {
	return f.identityPhone, nil
}

func (f *fakeStore) ActivePrescriptions(_ context.Context, _ string) ([]model.Prescription, error) {
	return f.prescriptions, nil
}

func (f *fakeStore) OwnerRecipient(_ context.Context, _ string) (model.Recipient, error) {
	return f.owner, f.ownerErr
}

func (f *fakeStore) AcceptedCaregivers(_ context.Context, _ string) ([]model.Recipient, error) {
	return f.caregivers, nil
}

func (f *fakeStore) EmergencyContacts(_ context.Context, _ string) ([]model.EmergencyContact, error) {
	return f.contacts, nil
}

func (f *fakeStore) TokensForUsers(_ context.Context, _ []string) ([]model.DeliveryToken, error) {
	return f.tokens, nil
}

func (f *fakeStore) InsertAlertLog(_ context.Context, entry model.AlertLogEntry) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.alertLog == nil {
		f.alertLog = map[string]bool{}
	}
	key := entry.SubjectID + "|" + string(entry.Kind)
	if f.alertLog[key] {
		return false, nil
	}
	f.alertLog[key] = true
	return true, nil
}

var _ sos.Store = &fakeStore{}

type fakeDispatch struct {
	emails     []mailer.Message
	failEmails map[string]bool

	pushTokens [][]string
	pushBody   string
}

func (f *fakeDispatch) PushToUsers(_ context.Context, userIDs []string, _ fcm.Notification) (*dispatch.PushReport, error) {
	return &dispatch.PushReport{Requested: len(userIDs)}, nil
}

func (f *fakeDispatch) PushToTokens(_ context.Context, tokens []string, n fcm.Notification) (*dispatch.PushReport, error) {
	f.pushTokens = append(f.pushTokens, tokens)
	f.pushBody = n.Body
	return &dispatch.PushReport{Requested: len(tokens), Delivered: len(tokens)}, nil
}

func (f *fakeDispatch) EmailEach(_ context.Context, msgs []mailer.Message) dispatch.EmailReport {
	report := dispatch.EmailReport{}
	for _, m := range msgs {
		if f.failEmails[m.To] {
			report.Failed++
			continue
		}
		f.emails = append(f.emails, m)
		report.Sent++
	}
	return report
}

var _ dispatch.UseCase = &fakeDispatch{}

type fakeEncrypter struct{ failFor string }

func (f fakeEncrypter) Encrypt(plaintext string) (string, error) { return plaintext, nil }

func (f fakeEncrypter) Decrypt(ciphertext string) (string, error) {
	if ciphertext == f.failFor {
		return "", errors.New("bad ciphertext")
	}
	return strings.TrimPrefix(ciphertext, "enc:"), nil
}

func testAlert() model.EmergencyAlert {
	return model.EmergencyAlert{
		ID:          "alert-1",
		PatientID:   "p1",
		TriggeredBy: "u1",
		CreatedAt:   time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC),
	}
}

func fullStore() *fakeStore {
	return &fakeStore{
		patient: model.Patient{ID: "p1", UserID: "u1", Name: "Alice", Address: null.StringFrom("12 Elm St")},
		profile: model.Profile{UserID: "u1", Name: null.StringFrom("Alice"), Phone: null.StringFrom("+84 90 123 45 67")},
		prescriptions: []model.Prescription{
			{MedicationName: "Metformin", Dosage: null.StringFrom("500mg")},
		},
		owner: model.Recipient{UserID: "u1", Email: "alice@example.com", Name: "Alice"},
		caregivers: []model.Recipient{
			{UserID: "u2", Email: "bob@example.com", Name: "Bob"},
		},
		contacts: []model.EmergencyContact{
			{Name: "Mom", Email: null.StringFrom("mom@example.com"), PhoneEncrypted: null.StringFrom("enc:0123456789")},
		},
		tokens: []model.DeliveryToken{{Token: "t1", UserID: "u1"}, {Token: "t2", UserID: "u2"}},
	}
}

func TestHandleAlert_FullFanout(t *testing.T) {
	store := fullStore()
	disp := &fakeDispatch{}
	uc := New(log.NewNop(), store, disp, fakeEncrypter{})

	summary, err := uc.HandleAlert(context.Background(), testAlert())
	if err != nil {
		t.Fatalf("HandleAlert() error = %v", err)
	}

	if summary.Recipients != 3 || summary.EmailsSent != 3 {
		t.Errorf("summary = %+v, want 3 recipients all emailed", summary)
	}

	body := disp.emails[0].TextBody
	for _, want := range []string{"Alice", "+84901234567", "12 Elm St", "Metformin (500mg)", "Mom: 0123456789"} {
		if !strings.Contains(body, want) {
			t.Errorf("email body missing %q:\n%s", want, body)
		}
	}

	if len(disp.pushTokens) != 1 {
		t.Fatalf("push calls = %d, want 1 multicast", len(disp.pushTokens))
	}
	if len(disp.pushTokens[0]) != 2 {
		t.Errorf("push tokens = %v, want both devices", disp.pushTokens[0])
	}
	if summary.PushTokens != 2 {
		t.Errorf("summary.PushTokens = %d, want 2", summary.PushTokens)
	}
}

func TestHandleAlert_DuplicateEventIsNoop(t *testing.T) {
	store := fullStore()
	disp := &fakeDispatch{}
	uc := New(log.NewNop(), store, disp, fakeEncrypter{})

	ctx := context.Background()
	if _, err := uc.HandleAlert(ctx, testAlert()); err != nil {
		t.Fatalf("first HandleAlert() error = %v", err)
	}
	summary, err := uc.HandleAlert(ctx, testAlert())
	if err != nil {
		t.Fatalf("second HandleAlert() error = %v", err)
	}

	if !summary.Duplicate {
		t.Errorf("summary.Duplicate = false, want true")
	}
	if len(disp.emails) != 3 {
		t.Errorf("emails = %d, want 3: duplicate must not re-send", len(disp.emails))
	}
}

func TestHandleAlert_LookupFailuresDegradeToPlaceholders(t *testing.T) {
	store := fullStore()
	store.patientErr = errors.New("connection refused")
	store.profileErr = errors.New("connection refused")
	disp := &fakeDispatch{}
	uc := New(log.NewNop(), store, disp, fakeEncrypter{})

	summary, err := uc.HandleAlert(context.Background(), testAlert())
	if err != nil {
		t.Fatalf("HandleAlert() error = %v", err)
	}
	if summary.EmailsSent == 0 {
		t.Fatalf("no emails sent: partial lookup failure must not abort the alert")
	}

	body := disp.emails[0].TextBody
	for _, want := range []string{placeholderName, placeholderPhone, placeholderAddress} {
		if !strings.Contains(body, want) {
			t.Errorf("email body missing placeholder %q:\n%s", want, body)
		}
	}
}

func TestHandleAlert_IdentityPhoneFallback(t *testing.T) {
	store := fullStore()
	store.profile.Phone = null.String{}
	store.identityPhone = "0987654321"
	disp := &fakeDispatch{}
	uc := New(log.NewNop(), store, disp, fakeEncrypter{})

	if _, err := uc.HandleAlert(context.Background(), testAlert()); err != nil {
		t.Fatalf("HandleAlert() error = %v", err)
	}
	if !strings.Contains(disp.emails[0].TextBody, "0987654321") {
		t.Errorf("email body missing identity-provider phone:\n%s", disp.emails[0].TextBody)
	}
}

func TestHandleAlert_RecipientValidationAndDedup(t *testing.T) {
	store := fullStore()
	store.caregivers = []model.Recipient{
		{UserID: "u2", Email: "bob@example.com", Name: "Bob"},
		{UserID: "u3", Email: "not-an-email", Name: "Broken"},
		{UserID: "u4", Email: "ALICE@example.com", Name: "Alice again"},
	}
	store.contacts = nil
	disp := &fakeDispatch{}
	uc := New(log.NewNop(), store, disp, fakeEncrypter{})

	summary, err := uc.HandleAlert(context.Background(), testAlert())
	if err != nil {
		t.Fatalf("HandleAlert() error = %v", err)
	}

	// alice (owner), bob; the second alice and the invalid address drop out.
	if summary.Recipients != 2 {
		t.Errorf("recipients = %d, want 2", summary.Recipients)
	}
}

func TestHandleAlert_EmailFailureDoesNotAbortSiblings(t *testing.T) {
	store := fullStore()
	disp := &fakeDispatch{failEmails: map[string]bool{"bob@example.com": true}}
	uc := New(log.NewNop(), store, disp, fakeEncrypter{})

	summary, err := uc.HandleAlert(context.Background(), testAlert())
	if err != nil {
		t.Fatalf("HandleAlert() error = %v", err)
	}

	if summary.EmailsSent != 2 || summary.EmailsFailed != 1 {
		t.Errorf("summary = %+v, want sent=2 failed=1", summary)
	}
	if summary.EmailsSent+summary.EmailsFailed != summary.Recipients {
		t.Errorf("sent+failed != recipients: %+v", summary)
	}
}

func TestHandleAlert_ContactPhoneDecryptFailure(t *testing.T) {
	store := fullStore()
	store.contacts = []model.EmergencyContact{
		{Name: "Mom", Email: null.StringFrom("mom@example.com"), PhoneEncrypted: null.StringFrom("garbled")},
	}
	disp := &fakeDispatch{}
	uc := New(log.NewNop(), store, disp, fakeEncrypter{failFor: "garbled"})

	if _, err := uc.HandleAlert(context.Background(), testAlert()); err != nil {
		t.Fatalf("HandleAlert() error = %v", err)
	}
	if !strings.Contains(disp.emails[0].TextBody, "Mom: "+placeholderPhone) {
		t.Errorf("email body should carry the phone placeholder for an undecryptable contact:\n%s", disp.emails[0].TextBody)
	}
}
