package usecase

import (
	"sync"

	"adherence-srv/internal/dispatch"
	"adherence-srv/pkg/fcm"
	"adherence-srv/pkg/log"
	"adherence-srv/pkg/mailer"
)

type implUseCase struct {
	l      log.Logger
	store  dispatch.Store
	fcm    fcm.IFcm
	mailer mailer.IMailer

	// dead holds every token retired during this process run. A token the
	// gateway rejected permanently must never reappear in a later dispatch
	// cycle, even when the store delete failed.
	mu   sync.Mutex
	dead map[string]struct{}
}

func New(l log.Logger, store dispatch.Store, fcmClient fcm.IFcm, mailerClient mailer.IMailer) dispatch.UseCase {
	return &implUseCase{
		l:      l,
		store:  store,
		fcm:    fcmClient,
		mailer: mailerClient,
		dead:   make(map[string]struct{}),
	}
}

func (uc *implUseCase) markDead(tokens []string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, t := range tokens {
		uc.dead[t] = struct{}{}
	}
}

func (uc *implUseCase) filterDead(tokens []string) []string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := tokens[:0:0]
	for _, t := range tokens {
		if _, gone := uc.dead[t]; !gone {
			out = append(out, t)
		}
	}
	return out
}
