package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates session access across multiple replicas.
// The session manager already serializes access within one process; a locker
// extends that guarantee across instances sharing a session store.
type DistributedLocker interface {
	// Lock acquires a distributed lock for the given key (session ID).
	// It blocks until acquired or the context is canceled. The returned
	// UnlockFunc MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
