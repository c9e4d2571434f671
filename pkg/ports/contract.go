package ports

import (
	"context"
	"testing"
	"time"

	"github.com/mohammaddehghani/fuelrep/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		sess := domain.NewSession(sessionID)
		sess.Step = domain.StepAskVolume
		sess.Draft = domain.Draft{Odometer: 12345.6, HasOdometer: true}

		err := store.Save(ctx, sessionID, sess)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sess.Step, loaded.Step)
		assert.Equal(t, sess.Draft, loaded.Draft)
	})

	t.Run("Load returns a copy", func(t *testing.T) {
		sess := domain.NewSession(sessionID)
		require.NoError(t, store.Save(ctx, sessionID, sess))

		first, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		first.Step = domain.StepDataMenu

		second, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, domain.StepIdle, second.Step, "mutating a loaded session must not leak into the store")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sessionID, domain.NewSession(sessionID)))

		err := store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewSession(id1))
		_ = store.Save(ctx, id2, domain.NewSession(id2))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunEntryStoreContract verifies an EntryStore implementation: fresh
// increasing IDs, ordered listing, delete semantics and at-least-partial bulk
// insert counting.
func RunEntryStoreContract(t *testing.T, store EntryStore) {
	ctx := context.Background()

	t.Run("Insert assigns fresh increasing ids", func(t *testing.T) {
		id1, err := store.Insert(ctx, 1000, 20)
		require.NoError(t, err)
		id2, err := store.Insert(ctx, 1100, 21)
		require.NoError(t, err)
		assert.Greater(t, id2, id1)
	})

	t.Run("ListAll ordered by id", func(t *testing.T) {
		entries, err := store.ListAll(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(entries), 2)
		for i := 1; i < len(entries); i++ {
			assert.Greater(t, entries[i].ID, entries[i-1].ID)
		}
		for _, e := range entries {
			assert.False(t, e.RecordedAt.IsZero(), "store must assign RecordedAt")
		}
	})

	t.Run("DeleteByID", func(t *testing.T) {
		id, err := store.Insert(ctx, 1200, 22)
		require.NoError(t, err)

		before, err := store.ListAll(ctx)
		require.NoError(t, err)

		removed, err := store.DeleteByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, removed)

		after, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before)-1)

		// Absent id is a boolean outcome, never an error.
		removed, err = store.DeleteByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, removed)

		unchanged, err := store.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, unchanged, len(after))
	})

	t.Run("BulkInsert", func(t *testing.T) {
		before, err := store.ListAll(ctx)
		require.NoError(t, err)

		rows := []domain.Observation{
			{Odometer: 2000, Volume: 30},
			{Odometer: 2100, Volume: 31},
			{Odometer: 2200, Volume: 32},
		}
		count, err := store.BulkInsert(ctx, rows)
		require.NoError(t, err)
		assert.Equal(t, len(rows), count)

		after, err := store.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, after, len(before)+len(rows))

		// Rows keep their relative order at the tail of the log.
		tail := after[len(after)-len(rows):]
		for i, row := range rows {
			assert.Equal(t, row.Odometer, tail[i].Odometer)
			assert.Equal(t, row.Volume, tail[i].Volume)
		}
	})
}
