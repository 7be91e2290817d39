package mailer

import "time"

// Security modes for the SMTP connection.
const (
	SecurityNone     = "none"
	SecurityStartTLS = "starttls"
	SecurityTLS      = "tls"
)

// Config holds the SMTP gateway configuration.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Security string
	Timeout  time.Duration

	// RatePerSecond caps outbound messages to stay under the provider's
	// sending limits. Zero disables pacing.
	RatePerSecond float64
}

// Message is one transactional email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}
