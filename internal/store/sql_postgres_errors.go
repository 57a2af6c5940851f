package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
)

// ErrDuplicateKey is returned when an insert violates a unique constraint
// that the upsert clauses do not cover (e.g. a conflicting primary key from
// a concurrent writer).
var ErrDuplicateKey = errors.New("duplicate key")

// classifyPostgresError maps well-known SQLSTATE codes onto repository
// sentinels so handlers can translate them to HTTP statuses with errors.Is.
// Unrecognised errors are returned unchanged.
func classifyPostgresError(err error) error {
	if err == nil {
		return nil
	}

	switch postgresErrorCode(err) {
	case pgerrcode.UniqueViolation:
		return errors.Join(ErrDuplicateKey, err)
	default:
		return err
	}
}
