package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/altech-app/cloudsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_store_mock.go -package=mock

// DocumentRepository is the server-side persistence for named documents,
// keyed by account and kind. Every write receives a server-assigned
// timestamp that is strictly monotonic per account+kind.
type DocumentRepository interface {
	// GetDocument returns the stored document for accountID+kind, or
	// [ErrDocumentNotFound] when it has never been written.
	GetDocument(ctx context.Context, accountID string, kind models.DocumentKind) (models.Document, error)

	// SetDocument overwrites the document for accountID+kind and returns
	// the timestamp the server assigned to the write.
	SetDocument(ctx context.Context, accountID string, kind models.DocumentKind, payload json.RawMessage, deviceID string) (time.Time, error)

	// DeleteDocuments removes every named document of the account.
	DeleteDocuments(ctx context.Context, accountID string) error
}

// QuoteRepository is the server-side persistence for the per-account quote
// collection.
type QuoteRepository interface {
	// ListQuotes returns every quote of the account, newest first.
	ListQuotes(ctx context.Context, accountID string) ([]models.Quote, error)

	// UpsertQuotes applies the batch all-or-nothing and returns the single
	// server-assigned timestamp stamped on every quote in it.
	UpsertQuotes(ctx context.Context, accountID string, quotes []models.Quote, deviceID string) (time.Time, error)

	// DeleteQuotes removes every quote of the account.
	DeleteQuotes(ctx context.Context, accountID string) error
}
