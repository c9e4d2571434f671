package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mohammaddehghani/fuelrep/pkg/domain"
)

// Store implements ports.EntryStore on SQLite. SQLite serializes writes, so
// ID assignment stays conflict-free under concurrent inserts from different
// sessions.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS fuel_entries (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	odometer    REAL NOT NULL,
	liters      REAL NOT NULL,
	recorded_at TIMESTAMP NOT NULL
);
`

// New opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for an in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert creates one entry with a fresh ID and a server-assigned timestamp.
func (s *Store) Insert(ctx context.Context, odometer, volume float64) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO fuel_entries (odometer, liters, recorded_at) VALUES (?, ?, ?)`,
		odometer, volume, time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: insert entry: %v", domain.ErrStorage, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: last insert id: %v", domain.ErrStorage, err)
	}
	return id, nil
}

// ListAll returns every entry in ID order.
func (s *Store) ListAll(ctx context.Context) ([]domain.FuelEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, odometer, liters, recorded_at FROM fuel_entries ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: list entries: %v", domain.ErrStorage, err)
	}
	defer rows.Close()

	var entries []domain.FuelEntry
	for rows.Next() {
		var e domain.FuelEntry
		if err := rows.Scan(&e.ID, &e.Odometer, &e.Volume, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("%w: scan entry: %v", domain.ErrStorage, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate entries: %v", domain.ErrStorage, err)
	}
	return entries, nil
}

// DeleteByID removes the entry if present; an absent ID is (false, nil).
func (s *Store) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM fuel_entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("%w: delete entry %d: %v", domain.ErrStorage, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: rows affected: %v", domain.ErrStorage, err)
	}
	return affected > 0, nil
}

// BulkInsert inserts rows one by one, in order. Not atomic: rows committed
// before a failure stay committed and the count reflects only those.
func (s *Store) BulkInsert(ctx context.Context, rows []domain.Observation) (int, error) {
	for i, row := range rows {
		if _, err := s.Insert(ctx, row.Odometer, row.Volume); err != nil {
			return i, fmt.Errorf("bulk insert row %d: %w", i+1, err)
		}
	}
	return len(rows), nil
}
