package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	pkgLog "adherence-srv/pkg/log"
)

type implFcm struct {
	l      pkgLog.Logger
	client *messaging.Client
}

var _ IFcm = &implFcm{}

// New initializes the Firebase app from a service account credentials file
// and returns the push gateway.
func New(ctx context.Context, l pkgLog.Logger, cfg Config) (IFcm, error) {
	if cfg.CredentialsFile == "" {
		return nil, ErrNotConfigured
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}

	return &implFcm{l: l, client: client}, nil
}
