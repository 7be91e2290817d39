package mailer

import "context"

// IMailer defines the transactional email gateway interface. Sends are
// single-recipient: the upstream provider has no multi-recipient templating.
type IMailer interface {
	Send(ctx context.Context, msg Message) error
}
