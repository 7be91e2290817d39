package discord

import (
	"context"
	"time"
)

// IDiscord defines the operational reporting webhook interface. It carries
// engine failures and run summaries to the operator channel; it is never on
// the patient/caregiver notification path.
type IDiscord interface {
	SendError(ctx context.Context, title, description string, err error) error
	SendInfo(ctx context.Context, title, description string) error
}

// MessageType determines the embed color.
type MessageType string

const (
	MessageTypeInfo  MessageType = "info"
	MessageTypeError MessageType = "error"
)

// Embed colors.
const (
	ColorInfo  = 0x3498DB
	ColorError = 0xE74C3C
)

// MaxEmbedLength is Discord's combined embed length limit.
const MaxEmbedLength = 6000

// Config holds the webhook configuration.
type Config struct {
	WebhookID    string
	WebhookToken string

	DefaultUsername string
	RetryCount      int
	RetryDelay      time.Duration
}
