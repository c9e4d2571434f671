package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mohammaddehghani/fuelrep/pkg/domain"
)

// EntryStore implements ports.EntryStore in memory, mainly for tests and
// local development. IDs are assigned monotonically; the log stays in
// insertion order, which is also ID order.
type EntryStore struct {
	mu      sync.RWMutex
	entries []domain.FuelEntry
	nextID  int64
}

// NewEntryStore creates an empty in-memory entry store.
func NewEntryStore() *EntryStore {
	return &EntryStore{nextID: 1}
}

// Insert appends one entry with a fresh ID and the current time.
func (s *EntryStore) Insert(ctx context.Context, odometer, volume float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.entries = append(s.entries, domain.FuelEntry{
		ID:         id,
		Odometer:   odometer,
		Volume:     volume,
		RecordedAt: time.Now().UTC(),
	})
	return id, nil
}

// ListAll returns a copy of the log in ID order.
func (s *EntryStore) ListAll(ctx context.Context) ([]domain.FuelEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.FuelEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// DeleteByID removes the entry if present.
func (s *EntryStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// BulkInsert applies Insert per row in order.
func (s *EntryStore) BulkInsert(ctx context.Context, rows []domain.Observation) (int, error) {
	for i, row := range rows {
		if _, err := s.Insert(ctx, row.Odometer, row.Volume); err != nil {
			return i, err
		}
	}
	return len(rows), nil
}
