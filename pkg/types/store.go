package types

import "errors"

// Store defines the lifecycle of a client storage backend.
// Callers attach to a backend, work with the clients table, and detach when
// done. The Store is an explicit handle; nothing in this module keeps a
// process-wide connection.
type Store interface {
	// Attach opens the database described by config, creating the file and
	// the clients table when absent. Returns ErrAlreadyAttached if called
	// while already attached and wraps ErrConnection when the file cannot be
	// opened or is not a database.
	Attach(config Config) error

	// Detach releases the connection. Idempotent: multiple calls succeed.
	// After Detach, Clients returns ErrDetached.
	Detach() error

	// Clients returns the data-access object for the clients table.
	Clients() (ClientTable, error)
}

// Store lifecycle errors.
var (
	ErrDetached        = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrConnection      = errors.New("database connection failed")
)
