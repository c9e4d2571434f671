package domain

import "time"

// FuelEntry is one refueling observation.
// Entries are immutable once created; the only mutation is deletion by ID.
// The store assigns ID (monotonically increasing) and RecordedAt.
type FuelEntry struct {
	ID         int64
	Odometer   float64 // cumulative distance at refill time
	Volume     float64 // liters dispensed
	RecordedAt time.Time
}

// Observation is the user-supplied part of an entry, before the store
// assigns an ID and timestamp. Used for drafts and bulk import rows.
type Observation struct {
	Odometer float64
	Volume   float64
}
