// internal/adapters/repository/store_test.go
package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSQLiteStore(t *testing.T, namespace string) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storefront.db")
	require.NoError(t, RunMigrations(DriverSQLite, path))

	db, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStore(db, namespace), path
}

func TestStore_GetMissingKey(t *testing.T) {
	store, _ := setupSQLiteStore(t, "")

	value, found, err := store.Get(context.Background(), "beauty-cart")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, value)
}

func TestStore_SetGetOverwriteDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := setupSQLiteStore(t, "default")

	require.NoError(t, store.Set(ctx, "authToken", []byte("tok-1")))
	require.NoError(t, store.Set(ctx, "authToken", []byte("tok-2")))

	value, found, err := store.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "tok-2", string(value))

	require.NoError(t, store.Delete(ctx, "authToken"))
	_, found, err = store.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, store.Delete(ctx, "authToken"), "deleting a missing key is a no-op")
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	alice, path := setupSQLiteStore(t, "alice")

	db, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()
	bob := NewStore(db, "bob")

	require.NoError(t, alice.Set(ctx, "userId", []byte("u-alice")))

	_, found, err := bob.Get(ctx, "userId")
	require.NoError(t, err)
	assert.False(t, found)

	raw, found, err := alice.Get(ctx, "userId")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "u-alice", string(raw))
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "storefront.db", want: "storefront.db?_journal_mode=WAL&_busy_timeout=5000"},
		{path: "file:storefront.db?_foreign_keys=on", want: "file:storefront.db?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sqliteDSN(tt.path))
	}
}

func TestOpen_SQLitePathWithParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.db") + "?_foreign_keys=on"

	db, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.PingContext(context.Background()))
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.db")
	require.NoError(t, RunMigrations(DriverSQLite, path))
	require.NoError(t, RunMigrations(DriverSQLite, path))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mongo", "mongodb://localhost")
	assert.Error(t, err)

	_, err = NewMigrator("mongo", "mongodb://localhost")
	assert.Error(t, err)
}
