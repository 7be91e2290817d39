// Package listener consumes Postgres insert events for emergency alerts. It
// holds a dedicated LISTEN connection on the `emergency_alert_created`
// channel; a table trigger does pg_notify with the new row as JSON.
package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"adherence-srv/internal/model"
	"adherence-srv/internal/sos"
	pkgLog "adherence-srv/pkg/log"
)

const (
	channel      = "emergency_alert_created"
	minReconnect = 5 * time.Second
	maxReconnect = 30 * time.Second
	pingInterval = 90 * time.Second
)

// Listener is the realtime subscription feeding the SOS handler.
type Listener struct {
	l   pkgLog.Logger
	dsn string
	uc  sos.UseCase
}

// New creates the listener. Run must be called to start consuming.
func New(l pkgLog.Logger, dsn string, uc sos.UseCase) *Listener {
	return &Listener{l: l, dsn: dsn, uc: uc}
}

// Run blocks consuming insert events until ctx is cancelled. Reconnects are
// handled by the underlying driver with capped backoff. Intended to be
// called with `go`.
func (lis *Listener) Run(ctx context.Context) error {
	pql := pq.NewListener(lis.dsn, minReconnect, maxReconnect, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			lis.l.Warnf(ctx, "internal.sos.listener.Run.event: type=%d: %v", ev, err)
		}
	})
	defer pql.Close()

	if err := pql.Listen(channel); err != nil {
		lis.l.Errorf(ctx, "internal.sos.listener.Run.Listen: %v", err)
		return err
	}
	lis.l.Infof(ctx, "internal.sos.listener.Run: listening on %s", channel)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case n := <-pql.Notify:
			if n == nil {
				// nil is delivered after a reconnect; events raised while
				// disconnected are lost, which the per-row ledger tolerates.
				lis.l.Warnf(ctx, "internal.sos.listener.Run: connection re-established")
				continue
			}
			lis.handle(ctx, n.Extra)

		case <-time.After(pingInterval):
			go func() {
				if err := pql.Ping(); err != nil {
					lis.l.Warnf(ctx, "internal.sos.listener.Run.Ping: %v", err)
				}
			}()
		}
	}
}

// handle decodes one event and processes it in its own goroutine so a slow
// alert never blocks the subscription.
func (lis *Listener) handle(ctx context.Context, payload string) {
	var alert model.EmergencyAlert
	if err := json.Unmarshal([]byte(payload), &alert); err != nil {
		lis.l.Errorf(ctx, "internal.sos.listener.handle.Unmarshal: payload=%q: %v", payload, err)
		return
	}

	go func() {
		if _, err := lis.uc.HandleAlert(ctx, alert); err != nil {
			lis.l.Errorf(ctx, "internal.sos.listener.handle.HandleAlert: alert=%s: %v", alert.ID, err)
		}
	}()
}
