package discord

import (
	"net/http"
	"time"

	pkgLog "adherence-srv/pkg/log"
)

// Discord implements IDiscord over a webhook URL.
type Discord struct {
	l      pkgLog.Logger
	config Config
	client *http.Client
}

var _ IDiscord = &Discord{}

// New creates a Discord webhook reporter. Returns nil when no webhook is
// configured; all methods are nil-safe no-ops in that case.
func New(l pkgLog.Logger, cfg Config) *Discord {
	if cfg.WebhookID == "" || cfg.WebhookToken == "" {
		return nil
	}
	if cfg.DefaultUsername == "" {
		cfg.DefaultUsername = "adherence-srv"
	}
	if cfg.RetryCount == 0 {
		cfg.RetryCount = 2
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}

	return &Discord{
		l:      l,
		config: cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetWebhookURL builds the webhook endpoint from id and token.
func (d *Discord) GetWebhookURL() string {
	return "https://discord.com/api/webhooks/" + d.config.WebhookID + "/" + d.config.WebhookToken
}
