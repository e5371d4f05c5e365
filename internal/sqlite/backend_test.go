// Tests for the SQLite backend lifecycle.
package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// setupBackend attaches a backend to a private in-memory database and
// detaches it when the test ends.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, Path: types.MemoryPath}))
	t.Cleanup(func() { b.Detach() })
	return b
}

// setupClients returns the clients table of a fresh in-memory backend.
func setupClients(t *testing.T) types.ClientTable {
	t.Helper()
	table, err := setupBackend(t).Clients()
	require.NoError(t, err)
	return table
}

func TestBackend_Attach(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "clients.db")

	b := NewBackend()
	config := types.Config{Backend: types.BackendSQLite, Path: dbPath}
	require.NoError(t, b.Attach(config))
	defer b.Detach()

	_, err := os.Stat(dbPath)
	require.NoError(t, err, "database file should be created with its parent directory")
	assert.Equal(t, dbPath, b.Path())

	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres", Path: "x.db"}), types.ErrBackendUnknown)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: types.BackendSQLite}), types.ErrPathEmpty)
}

func TestBackend_AttachCorruptFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "corrupt.db")
	require.NoError(t, os.WriteFile(dbPath, []byte(strings.Repeat("not a database ", 128)), 0o644))

	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendSQLite, Path: dbPath})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrConnection)

	_, err = b.Clients()
	assert.ErrorIs(t, err, types.ErrDetached, "failed attach must leave the backend detached")
}

func TestBackend_AttachDirectoryPath(t *testing.T) {
	dir := t.TempDir()

	b := NewBackend()
	err := b.Attach(types.Config{Backend: types.BackendSQLite, Path: dir})
	assert.ErrorIs(t, err, types.ErrConnection)
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, Path: types.MemoryPath}))

	table, err := b.Clients()
	require.NoError(t, err)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach should not error")

	_, err = b.Clients()
	assert.ErrorIs(t, err, types.ErrDetached)

	_, err = table.ListAll()
	assert.ErrorIs(t, err, types.ErrDetached, "stale table handle should report detached")
	assert.Equal(t, "", b.Path())
}

func TestBackend_ReopenKeepsRows(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "clients.db")
	config := types.Config{Backend: types.BackendSQLite, Path: dbPath}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	table, err := b.Clients()
	require.NoError(t, err)
	id, err := table.Insert(sampleClient("Persisted"))
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(config))
	defer b2.Detach()
	table2, err := b2.Clients()
	require.NoError(t, err)

	got, err := table2.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "Persisted", got.Name)
}

func TestBackend_IsolatedMemoryInstances(t *testing.T) {
	a := setupClients(t)
	b := setupClients(t)

	_, err := a.Insert(sampleClient("Only in A"))
	require.NoError(t, err)

	n, err := b.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
