// Package controller orchestrates client operations between the presentation
// layer and the clients table. Every write is validated before it reaches
// the store; every failure is returned to the caller and logged.
package controller

import (
	"errors"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/clientbook/internal/jsonl"
	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// ClientController runs the client use cases against one clients table.
type ClientController struct {
	clients types.ClientTable
	log     zerolog.Logger
}

// New returns a controller bound to clients.
func New(clients types.ClientTable, log zerolog.Logger) *ClientController {
	return &ClientController{
		clients: clients,
		log:     log.With().Str("component", "controller").Logger(),
	}
}

// List returns every client ordered by id.
func (c *ClientController) List() ([]*types.Client, error) {
	all, err := c.clients.ListAll()
	if err != nil {
		return nil, c.fail("list", 0, err)
	}
	c.log.Debug().Str("op", "list").Int("count", len(all)).Msg("clients listed")
	return all, nil
}

// Get returns one client.
func (c *ClientController) Get(id int64) (*types.Client, error) {
	client, err := c.clients.GetByID(id)
	if err != nil {
		return nil, c.fail("get", id, err)
	}
	return client, nil
}

// Search returns the clients whose name contains name.
func (c *ClientController) Search(name string) ([]*types.Client, error) {
	found, err := c.clients.Search(name)
	if err != nil {
		return nil, c.fail("search", 0, err)
	}
	c.log.Debug().Str("op", "search").Str("query", name).Int("count", len(found)).Msg("clients searched")
	return found, nil
}

// Count returns the number of clients.
func (c *ClientController) Count() (int, error) {
	n, err := c.clients.Count()
	if err != nil {
		return 0, c.fail("count", 0, err)
	}
	return n, nil
}

// NextID returns the id the next Create will assign.
func (c *ClientController) NextID() (int64, error) {
	id, err := c.clients.NextID()
	if err != nil {
		return 0, c.fail("next_id", 0, err)
	}
	return id, nil
}

// Create validates form and inserts the client it describes.
// Returns the assigned id.
func (c *ClientController) Create(form ClientForm) (int64, error) {
	client, err := Validate(form)
	if err != nil {
		return 0, c.fail("create", 0, err)
	}
	id, err := c.clients.Insert(client)
	if err != nil {
		return 0, c.fail("create", 0, err)
	}
	c.log.Info().Str("op", "create").Int64("client_id", id).Msg("client created")
	return id, nil
}

// Update validates form and overwrites every field of client id with it.
func (c *ClientController) Update(id int64, form ClientForm) error {
	client, err := Validate(form)
	if err != nil {
		return c.fail("update", id, err)
	}
	client.ID = id
	if err := c.clients.Update(client); err != nil {
		return c.fail("update", id, err)
	}
	c.log.Info().Str("op", "update").Int64("client_id", id).Msg("client updated")
	return nil
}

// Delete permanently removes client id.
func (c *ClientController) Delete(id int64) error {
	if err := c.clients.Delete(id); err != nil {
		return c.fail("delete", id, err)
	}
	c.log.Info().Str("op", "delete").Int64("client_id", id).Msg("client deleted")
	return nil
}

// DeleteMany removes every listed client, or none of them.
func (c *ClientController) DeleteMany(ids []int64) error {
	if err := c.clients.DeleteMany(ids); err != nil {
		return c.fail("delete_many", 0, err)
	}
	c.log.Info().Str("op", "delete_many").Int("count", len(ids)).Msg("clients deleted")
	return nil
}

// fail logs err at a level matching its class and returns it unchanged.
// User-correctable failures are warnings; store failures are errors.
func (c *ClientController) fail(op string, id int64, err error) error {
	event := c.log.Error()
	if IsUserError(err) {
		event = c.log.Warn()
	}
	if id != 0 {
		event = event.Int64("client_id", id)
	}
	event.Str("op", op).Err(err).Msg("operation failed")
	return err
}

// IsUserError reports whether err is recoverable by the user: a validation
// failure, a missing client or file, an invalid id, a constraint violation,
// or a malformed import file. Store connection failures never are.
func IsUserError(err error) bool {
	if errors.Is(err, types.ErrConnection) || errors.Is(err, types.ErrDetached) {
		return false
	}
	return errors.Is(err, types.ErrValidation) ||
		errors.Is(err, jsonl.ErrMalformedLine) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrInvalidID) ||
		errors.Is(err, types.ErrInvalidData) ||
		errors.Is(err, types.ErrConstraint)
}
