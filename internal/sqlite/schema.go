package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL for the clients table. Statements are idempotent so that an
// existing database file is reused as is.
const (
	createClients = `CREATE TABLE IF NOT EXISTS clients (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL CHECK (length(trim(name)) > 0),
    phone TEXT NOT NULL,
    address TEXT NOT NULL,
    postal_code TEXT NOT NULL CHECK (length(postal_code) = 5 AND postal_code NOT GLOB '*[^0-9]*'),
    city TEXT NOT NULL,
    birth_date TEXT NOT NULL,
    available_credit REAL NOT NULL CHECK (available_credit >= 0),
    is_good_client INTEGER NOT NULL CHECK (is_good_client IN (0, 1)),
    hair_color TEXT NOT NULL CHECK (hair_color IN ('brown', 'blond', 'red', 'bald'))
);`

	idxClientsName = `CREATE INDEX IF NOT EXISTS idx_clients_name ON clients(name COLLATE NOCASE);`
)

// schemaDDL lists every statement run on Attach, in order.
var schemaDDL = []string{
	createClients,
	idxClientsName,
}

// clientColumns is the column list shared by every SELECT on clients, in the
// order scanClient expects.
const clientColumns = "id, name, phone, address, postal_code, city, birth_date, available_credit, is_good_client, hair_color"

// ensureSchema executes schemaDDL against db.
func ensureSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
