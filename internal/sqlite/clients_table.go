package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// Compile-time interface check: clientsTable must implement ClientTable.
var _ types.ClientTable = (*clientsTable)(nil)

// clientsTable implements the ClientTable interface. Each operation
// hydrates/dehydrates between SQLite rows and *types.Client structs.
type clientsTable struct {
	backend *Backend
}

const (
	selectClients   = "SELECT " + clientColumns + " FROM clients"
	selectClient    = selectClients + " WHERE id = ?"
	selectAll       = selectClients + " ORDER BY id ASC"
	selectByName    = selectClients + ` WHERE name LIKE ? ESCAPE '\' ORDER BY name COLLATE NOCASE ASC, id ASC`
	selectNextID    = "SELECT COALESCE(MAX(id), 0) + 1 FROM clients"
	selectCount     = "SELECT COUNT(*) FROM clients"
	deleteClient    = "DELETE FROM clients WHERE id = ?"
	restoreClient   = "INSERT INTO clients (" + clientColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	updateClientSQL = `UPDATE clients SET
    name = ?, phone = ?, address = ?, postal_code = ?, city = ?,
    birth_date = ?, available_credit = ?, is_good_client = ?, hair_color = ?
WHERE id = ?`

	// insertClient assigns max(id)+1 and writes the row in one statement, so
	// the id read and the insert cannot interleave with another writer.
	insertClient = "INSERT INTO clients (" + clientColumns + ")" +
		" SELECT COALESCE(MAX(id), 0) + 1, ?, ?, ?, ?, ?, ?, ?, ?, ? FROM clients"
)

// db returns the live connection, or ErrDetached once the backend has been
// detached. The caller must hold backend.mu.
func (ct *clientsTable) db() (*sql.DB, error) {
	if !ct.backend.attached || ct.backend.db == nil {
		return nil, types.ErrDetached
	}
	return ct.backend.db, nil
}

// ListAll returns every client ordered by id ascending.
func (ct *clientsTable) ListAll() ([]*types.Client, error) {
	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()

	db, err := ct.db()
	if err != nil {
		return nil, err
	}
	return queryClients(db, "listing clients", selectAll)
}

// GetByID retrieves a client by id.
func (ct *clientsTable) GetByID(id int64) (*types.Client, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()

	db, err := ct.db()
	if err != nil {
		return nil, err
	}

	c, err := scanClient(db.QueryRow(selectClient, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client %d: %w", id, types.ErrNotFound)
		}
		return nil, storeErr(fmt.Sprintf("getting client %d", id), err)
	}
	return c, nil
}

// NextID returns max(id)+1, or 1 when the table is empty.
func (ct *clientsTable) NextID() (int64, error) {
	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()

	db, err := ct.db()
	if err != nil {
		return 0, err
	}

	var next int64
	if err := db.QueryRow(selectNextID).Scan(&next); err != nil {
		return 0, storeErr("computing next client id", err)
	}
	return next, nil
}

// Insert persists c as a new row. Any id already set on c is ignored; the
// assigned id is written back to c.ID.
func (ct *clientsTable) Insert(c *types.Client) (int64, error) {
	if c == nil {
		return 0, types.ErrInvalidData
	}
	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()

	db, err := ct.db()
	if err != nil {
		return 0, err
	}

	res, err := db.Exec(insertClient, clientValues(c)...)
	if err != nil {
		return 0, storeErr("inserting client", err)
	}
	// id is INTEGER PRIMARY KEY, so it is the rowid.
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storeErr("reading inserted client id", err)
	}
	c.ID = id
	return id, nil
}

// Update overwrites every column of the row matching c.ID.
func (ct *clientsTable) Update(c *types.Client) error {
	if c == nil {
		return types.ErrInvalidData
	}
	if c.ID <= 0 {
		return types.ErrInvalidID
	}
	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()

	db, err := ct.db()
	if err != nil {
		return err
	}

	args := append(clientValues(c), c.ID)
	res, err := db.Exec(updateClientSQL, args...)
	if err != nil {
		return storeErr(fmt.Sprintf("updating client %d", c.ID), err)
	}
	return requireAffected(res, c.ID)
}

// Delete removes the row with the given id.
func (ct *clientsTable) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()

	db, err := ct.db()
	if err != nil {
		return err
	}

	res, err := db.Exec(deleteClient, id)
	if err != nil {
		return storeErr(fmt.Sprintf("deleting client %d", id), err)
	}
	return requireAffected(res, id)
}

// Search returns clients whose name contains name, ignoring ASCII case.
// LIKE wildcards in name are matched literally.
func (ct *clientsTable) Search(name string) ([]*types.Client, error) {
	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()

	db, err := ct.db()
	if err != nil {
		return nil, err
	}
	pattern := "%" + escapeLike(strings.TrimSpace(name)) + "%"
	return queryClients(db, "searching clients", selectByName, pattern)
}

// Count returns the number of rows in the clients table.
func (ct *clientsTable) Count() (int, error) {
	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()

	db, err := ct.db()
	if err != nil {
		return 0, err
	}

	var n int
	if err := db.QueryRow(selectCount).Scan(&n); err != nil {
		return 0, storeErr("counting clients", err)
	}
	return n, nil
}

// DeleteMany removes every listed id in one transaction. Duplicate ids are
// deleted once. If any id has no row the transaction is rolled back.
func (ct *clientsTable) DeleteMany(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	for _, id := range ids {
		if id <= 0 {
			return types.ErrInvalidID
		}
	}
	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()

	db, err := ct.db()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return storeErr("beginning transaction", err)
	}
	defer tx.Rollback()

	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		res, err := tx.Exec(deleteClient, id)
		if err != nil {
			return storeErr(fmt.Sprintf("deleting client %d", id), err)
		}
		if err := requireAffected(res, id); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return storeErr("committing deletion", err)
	}
	return nil
}

// Restore inserts c with its own id.
func (ct *clientsTable) Restore(c *types.Client) error {
	if c == nil {
		return types.ErrInvalidData
	}
	if c.ID <= 0 {
		return types.ErrInvalidID
	}
	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()

	db, err := ct.db()
	if err != nil {
		return err
	}

	args := append([]any{c.ID}, clientValues(c)...)
	if _, err := db.Exec(restoreClient, args...); err != nil {
		return storeErr(fmt.Sprintf("restoring client %d", c.ID), err)
	}
	return nil
}

// clientValues returns the column values of c after id, in clientColumns order.
func clientValues(c *types.Client) []any {
	good := 0
	if c.IsGoodClient {
		good = 1
	}
	return []any{
		c.Name,
		c.Phone,
		c.Address,
		c.PostalCode,
		c.City,
		c.BirthDate,
		c.AvailableCredit,
		good,
		string(c.HairColor),
	}
}

// scanClient hydrates one row selected with clientColumns.
func scanClient(row scanner) (*types.Client, error) {
	var (
		c     types.Client
		good  int64
		color string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Address, &c.PostalCode, &c.City,
		&c.BirthDate, &c.AvailableCredit, &good, &color,
	)
	if err != nil {
		return nil, err
	}
	c.IsGoodClient = good != 0
	c.HairColor = types.HairColor(color)
	return &c, nil
}

// queryClients runs a multi-row SELECT and hydrates every row. The result is
// never nil so that an empty table lists as [] rather than null.
func queryClients(db *sql.DB, op, query string, args ...any) ([]*types.Client, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	clients := []*types.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return clients, nil
}

// requireAffected maps a zero-row UPDATE or DELETE to ErrNotFound.
func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("reading affected rows", err)
	}
	if n == 0 {
		return fmt.Errorf("client %d: %w", id, types.ErrNotFound)
	}
	return nil
}

// escapeLike escapes the LIKE wildcards of s using backslash.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
