package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrStorage marks a failure to durably commit or read fuel entries.
// Adapters wrap their backend errors with it so callers can classify.
var ErrStorage = errors.New("storage failure")

// ErrInsufficientData is returned by the analytics engine when fewer than the
// minimum number of entries exist. It is a normal outcome, not a fault.
var ErrInsufficientData = errors.New("not enough entries to compute a trend")
