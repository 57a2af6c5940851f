package store

import (
	"context"
	"fmt"

	"github.com/altech-app/cloudsync/internal/config"
	"github.com/altech-app/cloudsync/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// LocalStore is the sqlite-backed device-local store holding named
	// documents, quotes, watermarks, and metadata.
	LocalStore LocalStore
}

// NewClientStorages initialises the client storage layer: it opens the sqlite
// file from cfg.Path (creating it on first run), applies the local schema,
// and wires a fresh [LocalStore].
func NewClientStorages(cfg config.Local, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		LocalStore: NewLocalStore(db, logger),
	}, nil
}
