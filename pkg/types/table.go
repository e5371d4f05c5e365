package types

import "errors"

// ClientTable provides the CRUD operations on the clients table.
// Every method is synchronous and runs on the single store connection.
type ClientTable interface {
	// ListAll returns every client ordered by id ascending.
	ListAll() ([]*Client, error)

	// GetByID returns the client with the given id.
	// Returns ErrNotFound if no row matches.
	GetByID(id int64) (*Client, error)

	// NextID returns the id the next Insert will assign: max(id)+1, or 1 for
	// an empty table.
	NextID() (int64, error)

	// Insert persists c as a new row with id max(id)+1, stores the assigned id
	// in c.ID and returns it. Constraint violations wrap ErrConstraint.
	Insert(c *Client) (int64, error)

	// Update overwrites every column of the row matching c.ID.
	// Returns ErrNotFound if no such row exists.
	Update(c *Client) error

	// Delete removes the row with the given id.
	// Returns ErrNotFound if no such row exists, including on a second delete.
	Delete(id int64) error

	// Search returns clients whose name contains the given text, ignoring
	// case, ordered by name. An empty string matches every client.
	Search(name string) ([]*Client, error)

	// Count returns the number of clients.
	Count() (int, error)

	// DeleteMany removes every listed id in a single transaction. If any id
	// is missing nothing is deleted and ErrNotFound is returned.
	DeleteMany(ids []int64) error

	// Restore inserts c keeping its id. A duplicate id wraps ErrConstraint.
	Restore(c *Client) error
}

// Table operation errors.
var (
	ErrNotFound    = errors.New("client not found")
	ErrInvalidID   = errors.New("invalid client ID")
	ErrInvalidData = errors.New("invalid client data")
	ErrConstraint  = errors.New("constraint violation")
)

// Entity errors.
var (
	ErrInvalidHairColor = errors.New("invalid hair color")
)
