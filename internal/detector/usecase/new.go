package usecase

import (
	"time"

	"adherence-srv/config"
	"adherence-srv/internal/detector"
	"adherence-srv/internal/dispatch"
	"adherence-srv/pkg/log"
	"adherence-srv/pkg/reportstore"
)

type implUseCase struct {
	l        log.Logger
	store    detector.Store
	dispatch dispatch.UseCase
	reports  reportstore.IReportStore
	loc      *time.Location

	// settings is re-invoked at the top of every run so operator changes
	// apply without a restart.
	settings func() (config.AlertSettings, error)

	// clock and sleep are injectable for tests.
	clock func() time.Time
	sleep func(time.Duration)
}

// Config carries the detector dependencies that are not services.
type Config struct {
	Location *time.Location
	Settings func() (config.AlertSettings, error)
}

func New(l log.Logger, store detector.Store, dispatchUC dispatch.UseCase, reports reportstore.IReportStore, cfg Config) detector.UseCase {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	settings := cfg.Settings
	if settings == nil {
		settings = config.LoadAlertSettings
	}

	return &implUseCase{
		l:        l,
		store:    store,
		dispatch: dispatchUC,
		reports:  reports,
		loc:      loc,
		settings: settings,
		clock:    time.Now,
		sleep:    time.Sleep,
	}
}
