package dispatch

import (
	"context"

	"adherence-srv/internal/model"
	"adherence-srv/pkg/fcm"
	"adherence-srv/pkg/mailer"
)

// UseCase is the shared dispatch routine used by every detector: one
// multicast push call per notification, per-recipient guarded email sends,
// and retirement of dead push tokens.
type UseCase interface {
	// PushToUsers resolves the users' delivery tokens and multicasts the
	// notification. An empty token set is a logged no-op, not an error.
	PushToUsers(ctx context.Context, userIDs []string, n fcm.Notification) (*PushReport, error)

	// PushToTokens multicasts to an already-resolved token set.
	PushToTokens(ctx context.Context, tokens []string, n fcm.Notification) (*PushReport, error)

	// EmailEach sends each message independently. A failed recipient is
	// logged and counted; it never aborts the remaining sends and never
	// surfaces as an error to the caller.
	EmailEach(ctx context.Context, msgs []mailer.Message) EmailReport
}

// Store is the slice of the data store the dispatcher needs.
type Store interface {
	TokensForUsers(ctx context.Context, userIDs []string) ([]model.DeliveryToken, error)
	DeleteTokens(ctx context.Context, tokens []string) error
}
