package store

import (
	"database/sql"

	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/migrations"
)

// DB wraps a database/sql connection with the application logger. The same
// wrapper serves both the client's sqlite file and the server's postgres
// database; only the server side carries goose migrations.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies pending goose migrations. Server-side (postgres) only; the
// client's sqlite schema is created inline on connect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
