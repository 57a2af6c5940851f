package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/altech-app/cloudsync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/local_store_mock.go -package=mock

// LocalStore is the device-local persistence consumed by the sync engine.
// It owns the authoritative on-device copy of every named document, the quote
// collection, the per-kind sync watermarks, and small metadata values such as
// the device identifier.
//
// Local failures are hard errors: no sync decision can be trusted once the
// device's own persistence is unreliable, so callers propagate them instead
// of degrading.
type LocalStore interface {
	// GetDocument returns the payload stored for kind, or
	// [ErrDocumentNotFound] when the document has never been saved locally.
	GetDocument(ctx context.Context, kind models.DocumentKind) (json.RawMessage, error)

	// SetDocument overwrites the payload stored for kind in place. No
	// history is retained.
	SetDocument(ctx context.Context, kind models.DocumentKind, payload json.RawMessage) error

	// GetQuotes returns every quote in the local collection, conflict
	// copies included.
	GetQuotes(ctx context.Context) ([]models.Quote, error)

	// ReplaceQuotes atomically replaces the whole local quote collection
	// with the given set. Used by the pull path so a merge result lands in
	// one transaction.
	ReplaceQuotes(ctx context.Context, quotes []models.Quote) error

	// GetWatermark returns the timestamp of the last write this device has
	// fully reconciled for the given key (a document kind or
	// [models.QuoteCollectionKey]). The zero time means never synced.
	GetWatermark(ctx context.Context, key string) (time.Time, error)

	// SetWatermark persists the watermark for key. Monotonicity is the
	// caller's responsibility; the store does not enforce it.
	SetWatermark(ctx context.Context, key string, t time.Time) error

	// ClearWatermarks removes every stored watermark. Used by the remote
	// wipe operation so the next sync starts from scratch.
	ClearWatermarks(ctx context.Context) error

	// GetMeta returns the value stored under key, or an empty string when
	// the key has never been set.
	GetMeta(ctx context.Context, key string) (string, error)

	// SetMeta stores value under key, overwriting any previous value.
	SetMeta(ctx context.Context, key, value string) error
}
