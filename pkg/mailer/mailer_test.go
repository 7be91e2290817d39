package mailer

import (
	"errors"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"adherence-srv/pkg/log"
)

func newTestMailer(t *testing.T) *implMailer {
	m, err := New(log.NewNop(), Config{
		Host:     "smtp.example.com",
		Port:     587,
		From:     "alerts@example.com",
		Security: SecurityStartTLS,
		Timeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return m.(*implMailer)
}

func TestNew_RequiresHostPortFrom(t *testing.T) {
	_, err := New(log.NewNop(), Config{Port: 587, From: "a@b.c"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("New() without host error = %v, want ErrNotConfigured", err)
	}
}

func TestNew_NormalizesSecurityMode(t *testing.T) {
	m, err := New(log.NewNop(), Config{
		Host: "smtp.example.com", Port: 465, From: "a@b.c",
		Security: " SSL/weird ",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := m.(*implMailer).cfg.Security; got != SecurityStartTLS {
		t.Errorf("unknown security mode normalized to %q, want %q", got, SecurityStartTLS)
	}
}

func TestBuildMessage_MultipartAlternative(t *testing.T) {
	m := newTestMailer(t)

	raw := string(m.buildMessage(Message{
		To:       "carol@example.com",
		Subject:  "Weekly digest",
		TextBody: "plain part",
		HTMLBody: "<p>html part</p>",
	}))

	for _, want := range []string{
		"From: alerts@example.com",
		"To: carol@example.com",
		"Subject: Weekly digest",
		"multipart/alternative",
		"Content-Type: text/plain",
		"plain part",
		"Content-Type: text/html",
		"<p>html part</p>",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q:\n%s", want, raw)
		}
	}
}

func TestBuildMessage_PlainOnly(t *testing.T) {
	m := newTestMailer(t)

	raw := string(m.buildMessage(Message{To: "a@b.c", Subject: "s", TextBody: "hello"}))

	if strings.Contains(raw, "multipart") {
		t.Errorf("plain-only message should not be multipart:\n%s", raw)
	}
	if !strings.Contains(raw, "Content-Type: text/plain") {
		t.Errorf("plain-only message missing text content type:\n%s", raw)
	}
}

func TestBuildMessage_EncodesSubject(t *testing.T) {
	m := newTestMailer(t)

	raw := string(m.buildMessage(Message{To: "a@b.c", Subject: "Thuốc sắp hết", TextBody: "x"}))

	if !strings.Contains(raw, "=?utf-8?q?") {
		t.Errorf("non-ASCII subject not Q-encoded:\n%s", raw)
	}
}

func TestClassifyAuthError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"gmail app password code", &textproto.Error{Code: 534, Msg: "5.7.9 Application-specific password required"}, true},
		{"text match", errors.New("534-5.7.9 application-specific password required"), true},
		{"plain auth failure", &textproto.Error{Code: 535, Msg: "bad credentials"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(classifyAuthError(tt.err), ErrAppPasswordRequired)
			if got != tt.want {
				t.Errorf("classifyAuthError(%v) app-password = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
