package fcm

import "errors"

var (
	// ErrNoTokens is returned when SendMulticast is called with an empty
	// token batch. Callers should skip the send instead.
	ErrNoTokens = errors.New("no device tokens to send to")
	// ErrNotConfigured is returned when the gateway was initialized without
	// credentials.
	ErrNotConfigured = errors.New("fcm gateway is not configured")
)
