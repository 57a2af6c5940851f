// Package adapter provides transport-layer abstractions for communicating with
// the cloudsync server.
//
// The primary abstraction is [RemoteStore], which decouples the sync engine
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteStore]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401, [ErrNotFound] for 404).
package adapter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/altech-app/cloudsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines transport-agnostic access to the account's cloud-side
// documents and quote collection. Implementations are responsible for
// serialisation, authentication header management, and mapping transport-level
// errors to the sentinel values defined in this package.
type RemoteStore interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// requests. Passing an empty string clears the token and makes the remote
	// unavailable.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Available reports whether the adapter holds everything it needs to talk
	// to the server: a base URL and a non-empty bearer token. It performs no
	// network I/O.
	Available() bool

	// GetDocument fetches the server-side copy of the document identified by
	// kind. Returns [ErrNotFound] (wrapped) if the server has no document of
	// that kind for the account.
	GetDocument(ctx context.Context, kind models.DocumentKind) (models.Document, error)

	// SetDocument uploads payload as the new server-side copy of the document
	// identified by kind, tagged with the writing device. Returns the
	// server-assigned write timestamp.
	SetDocument(ctx context.Context, kind models.DocumentKind, payload json.RawMessage, deviceID string) (time.Time, error)

	// ListQuotes fetches the full server-side quote collection for the
	// account. An account with no quotes yields an empty slice, not an error.
	ListQuotes(ctx context.Context) ([]models.Quote, error)

	// UpsertQuotes uploads a batch of quotes, inserting new IDs and replacing
	// existing ones. The whole batch shares one server-assigned write
	// timestamp, which is returned.
	UpsertQuotes(ctx context.Context, quotes []models.Quote, deviceID string) (time.Time, error)

	// DeleteAccountData removes every document and every quote the server
	// holds for the account. Local data is untouched.
	DeleteAccountData(ctx context.Context) error
}
