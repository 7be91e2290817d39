package mailer

import "errors"

var (
	// ErrNotConfigured is returned when the gateway is missing its host,
	// port or sender address.
	ErrNotConfigured = errors.New("smtp gateway is not configured")
	// ErrAppPasswordRequired is returned when the provider rejects plain
	// credentials and demands an application-specific password.
	ErrAppPasswordRequired = errors.New("smtp provider requires an application-specific password")
)
