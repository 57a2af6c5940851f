package service

import (
	"context"
	"time"

	"github.com/altech-app/cloudsync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// Decision is the conflict detector's verdict for one remote document.
type Decision int

const (
	// DecisionApply means the remote payload can overwrite the local copy
	// without losing anything the device has not already reconciled.
	DecisionApply Decision = iota

	// DecisionConflict means both sides hold divergent data and the caller
	// must choose.
	DecisionConflict
)

// ConflictDetector classifies a fetched remote document against the device's
// local state. It is a pure, stateless computation: all evidence arrives as
// arguments and no storage or network access happens inside.
type ConflictDetector interface {
	// Classify decides whether remote may be applied locally. localPayload
	// is the device's current copy (nil when the document has never been
	// saved locally), watermark is the last remote write this device has
	// reconciled for the kind, and deviceID identifies this installation.
	Classify(remote models.Document, localPayload []byte, watermark time.Time, deviceID string) Decision
}

// QuoteMerger reconciles the local and remote quote collections into one
// merged set. Divergent pairs survive as conflict copies instead of being
// overwritten; the returned pairs let callers surface them for review.
type QuoteMerger interface {
	// Merge unions local and remote by quote ID. Remote-only quotes are
	// adopted; local-only quotes are kept; for quotes present on both sides
	// the loser of the comparison is never dropped silently.
	Merge(local, remote []models.Quote, watermark time.Time, deviceID string) (merged []models.Quote, conflicts []models.QuotePair)
}

// PushOptions tunes a single push operation.
type PushOptions struct {
	// SettingsOnly restricts the push to the settings document, skipping
	// the other kinds and the quote collection.
	SettingsOnly bool

	// Background marks pushes triggered by the debounce timer or the
	// periodic job. Background failures notify listeners at reduced
	// severity so they do not interrupt the user.
	Background bool
}

// SyncEngine coordinates the bidirectional synchronisation of the device's
// local store with the account's cloud copy. Operations are single-flight:
// a push or pull that finds another one in progress returns immediately
// instead of queueing. When the remote store is unavailable every operation
// degrades to a no-op; local data is always readable and writable regardless.
type SyncEngine interface {
	// PushToCloud uploads the local documents and quote collection to the
	// remote store. Per-kind writes are independent: each successful write
	// advances that kind's watermark to the server-assigned timestamp,
	// while failed kinds keep their stale watermarks and retry on the next
	// push. The report distinguishes partial from total failure.
	PushToCloud(ctx context.Context, opts PushOptions) (models.PushReport, error)

	// PullFromCloud fetches the remote documents and quotes, applies
	// everything classified as safe, and returns the conflicts that need a
	// decision. The returned set replaces any conflicts still pending from
	// the previous pull.
	PullFromCloud(ctx context.Context) ([]models.Conflict, error)

	// ResolveConflict settles the pending document conflict for kind with
	// the given choice. Resolving a kind with no pending conflict is a
	// no-op, so double resolution is harmless.
	ResolveConflict(ctx context.Context, kind models.DocumentKind, choice models.Resolution) error

	// SchedulePush arms (or re-arms) the debounced push timer. Rapid
	// successive calls coalesce into one push after the quiet window.
	// Scheduling is suppressed while a pull is applying remote data, so
	// freshly applied documents are not echoed back to the server.
	SchedulePush(ctx context.Context)

	// FullSync pulls to completion and then pushes. It is the
	// user-initiated "sync now" operation, so failures notify listeners at
	// full severity.
	FullSync(ctx context.Context) ([]models.Conflict, error)

	// DeleteCloudData wipes every document and quote the server holds for
	// the account and clears the local watermarks. Local data survives.
	DeleteCloudData(ctx context.Context) error

	// Status returns a point-in-time snapshot for status displays.
	Status() models.SyncStatus

	// Subscribe registers fn to receive sync events. The returned function
	// removes the listener; calling it more than once is safe.
	Subscribe(fn func(models.SyncEvent)) (unsubscribe func())
}

// ClientSyncJob is a background worker that periodically runs a full sync.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every
	// interval, defaulting to 5 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
