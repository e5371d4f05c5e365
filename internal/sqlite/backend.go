// Package sqlite implements the SQLite storage backend for clientbook.
// The backend owns the single database connection and hands out the clients
// table accessor bound to it.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// driverName is the database/sql driver registered by modernc.org/sqlite.
const driverName = "sqlite"

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface on top of an embedded SQLite file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	clients  *clientsTable
	log      zerolog.Logger
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{log: zerolog.Nop()}
}

// WithLogger sets the logger used for lifecycle events and returns b.
func (b *Backend) WithLogger(l zerolog.Logger) *Backend {
	b.log = l.With().Str("component", "sqlite").Logger()
	return b
}

// Clients returns the clients table accessor.
// Returns ErrDetached if the backend is not attached.
func (b *Backend) Clients() (types.ClientTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.clients, nil
}

// Attach opens the database file named by config.Path, creating it and its
// parent directory when absent, and ensures the clients table exists. An
// existing file is opened as is; its rows are kept.
// Returns ErrAlreadyAttached if already attached. Failures to open or migrate
// the file wrap ErrConnection.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if !config.InMemory() {
		if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
			return fmt.Errorf("%w: creating directory for %s: %w", types.ErrConnection, config.Path, err)
		}
	}

	db, err := sql.Open(driverName, config.Path)
	if err != nil {
		return fmt.Errorf("%w: opening %s: %w", types.ErrConnection, config.Path, err)
	}

	// One connection for the process lifetime. This also keeps a :memory:
	// database alive and shared across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("%w: connecting to %s: %w", types.ErrConnection, config.Path, err)
	}

	if err := ensureSchema(db); err != nil {
		db.Close()
		return fmt.Errorf("%w: %s: %w", types.ErrConnection, config.Path, err)
	}

	b.db = db
	b.config = config
	b.clients = &clientsTable{backend: b}
	b.attached = true

	b.log.Debug().Str("path", config.Path).Msg("store attached")
	return nil
}

// Detach closes the SQLite connection. After Detach, Clients and every
// clients table operation return ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	b.attached = false
	b.clients = nil

	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		if err != nil {
			return fmt.Errorf("closing %s: %w", b.config.Path, err)
		}
	}

	b.log.Debug().Str("path", b.config.Path).Msg("store detached")
	return nil
}

// Path returns the database path of the attached store, or "" when detached.
func (b *Backend) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return ""
	}
	return b.config.Path
}
