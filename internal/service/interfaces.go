package service

import (
	"context"
	"time"

	"github.com/altech-app/cloudsync/models"
)

// DocumentService is the server-side application layer for named documents.
type DocumentService interface {
	// GetDocument returns the stored document for accountID+kind.
	GetDocument(ctx context.Context, accountID string, kind models.DocumentKind) (models.Document, error)

	// SetDocument validates req, stores its payload for accountID+kind, and
	// returns the server-assigned write timestamp.
	SetDocument(ctx context.Context, accountID string, kind models.DocumentKind, req models.SetDocumentRequest) (time.Time, error)

	// DeleteDocuments removes every named document of the account.
	DeleteDocuments(ctx context.Context, accountID string) error
}

// QuoteService is the server-side application layer for the quote collection.
type QuoteService interface {
	// ListQuotes returns every quote of the account, newest first.
	ListQuotes(ctx context.Context, accountID string) ([]models.Quote, error)

	// UpsertQuotes validates req, applies the batch all-or-nothing, and
	// returns the single server-assigned timestamp stamped on the batch.
	UpsertQuotes(ctx context.Context, accountID string, req models.UpsertQuotesRequest) (time.Time, error)

	// DeleteQuotes removes every quote of the account.
	DeleteQuotes(ctx context.Context, accountID string) error
}
