package postgres

import (
	"database/sql"
	"errors"
	"time"

	pkgLog "adherence-srv/pkg/log"
)

// ErrNotFound is returned when a referenced row does not exist. Callers on
// the SOS path degrade to placeholders instead of failing on it.
var ErrNotFound = errors.New("record not found")

// Store is the PostgreSQL data-store adapter. It satisfies the narrow store
// interfaces declared by the dispatch, detector and sos packages.
type Store struct {
	l     pkgLog.Logger
	db    *sql.DB
	clock func() time.Time
}

func New(l pkgLog.Logger, db *sql.DB) *Store {
	return &Store{
		l:     l,
		db:    db,
		clock: time.Now,
	}
}
