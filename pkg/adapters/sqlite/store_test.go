package sqlite_test

import (
	"context"
	"testing"

	"github.com/mohammaddehghani/fuelrep/pkg/adapters/sqlite"
	"github.com/mohammaddehghani/fuelrep/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteEntryStore_Contract(t *testing.T) {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ports.RunEntryStoreContract(t, store)
}

func TestSQLiteEntryStore_PersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/fuel.db"

	store, err := sqlite.New(path)
	require.NoError(t, err)
	id, err := store.Insert(context.Background(), 1000, 40)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	entries, err := reopened.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, 1000.0, entries[0].Odometer)
	assert.Equal(t, 40.0, entries[0].Volume)
}
