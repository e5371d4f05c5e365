package sqlite

import (
	"errors"
	"fmt"

	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mesh-intelligence/clientbook/pkg/types"
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// isConstraintErr reports whether err is an SQLite constraint failure
// (primary key, NOT NULL, CHECK or UNIQUE). Extended result codes keep the
// primary code in their low byte.
func isConstraintErr(err error) bool {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
}

// storeErr classifies a driver error for the caller: constraint failures wrap
// ErrConstraint, everything else wraps ErrConnection.
func storeErr(op string, err error) error {
	if isConstraintErr(err) {
		return fmt.Errorf("%s: %w: %w", op, types.ErrConstraint, err)
	}
	return fmt.Errorf("%s: %w: %w", op, types.ErrConnection, err)
}
