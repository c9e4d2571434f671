package ports

import (
	"context"

	"github.com/mohammaddehghani/fuelrep/pkg/domain"
)

// EntryStore persists fuel observations. It is the single source of truth for
// entries; implementations serialize their own writes so ID assignment is
// conflict-free under concurrent inserts from different sessions.
type EntryStore interface {
	// Insert creates one entry with a fresh increasing ID and a
	// store-assigned timestamp. Failures wrap domain.ErrStorage.
	Insert(ctx context.Context, odometer, volume float64) (int64, error)

	// ListAll returns every entry sorted by ID ascending; empty if none.
	ListAll(ctx context.Context) ([]domain.FuelEntry, error)

	// DeleteByID removes the entry if present and reports whether a row was
	// removed. An absent ID is (false, nil), not an error.
	DeleteByID(ctx context.Context, id int64) (bool, error)

	// BulkInsert applies Insert once per row in order, counting successes.
	// It is not atomic: on a mid-sequence failure the rows already inserted
	// stay committed and the returned count reflects only those.
	BulkInsert(ctx context.Context, rows []domain.Observation) (int, error)
}

// SessionStore persists conversation sessions keyed by session ID.
type SessionStore interface {
	// Save persists the session for the given ID.
	Save(ctx context.Context, sessionID string, sess *domain.Session) error

	// Load retrieves the session for the given ID.
	// Returns domain.ErrSessionNotFound if it does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session for the given ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of all stored sessions.
	List(ctx context.Context) ([]string, error)
}
