package usecase

import (
	"adherence-srv/internal/dispatch"
	"adherence-srv/internal/sos"
	"adherence-srv/pkg/encrypter"
	pkgLog "adherence-srv/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	store    sos.Store
	dispatch dispatch.UseCase
	enc      encrypter.Encrypter
}

var _ sos.UseCase = &implUseCase{}

// New creates the SOS handler.
func New(l pkgLog.Logger, store sos.Store, disp dispatch.UseCase, enc encrypter.Encrypter) sos.UseCase {
	return &implUseCase{
		l:        l,
		store:    store,
		dispatch: disp,
		enc:      enc,
	}
}
