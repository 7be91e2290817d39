package mailer

import (
	"strings"
	"time"

	"golang.org/x/time/rate"

	pkgLog "adherence-srv/pkg/log"
)

type implMailer struct {
	l       pkgLog.Logger
	cfg     Config
	limiter *rate.Limiter
}

var _ IMailer = &implMailer{}

// New creates the SMTP email gateway. Returns ErrNotConfigured when the
// required fields are missing so the caller can disable the email channel.
func New(l pkgLog.Logger, cfg Config) (IMailer, error) {
	if cfg.Host == "" || cfg.Port == 0 || cfg.From == "" {
		return nil, ErrNotConfigured
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Security)) {
	case SecurityNone, SecurityStartTLS, SecurityTLS:
		cfg.Security = strings.ToLower(strings.TrimSpace(cfg.Security))
	default:
		cfg.Security = SecurityStartTLS
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}

	return &implMailer{l: l, cfg: cfg, limiter: limiter}, nil
}
