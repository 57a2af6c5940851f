package service

import (
	"errors"

	"github.com/altech-app/cloudsync/internal/adapter"
)

// Listener-facing message strings. Kept together so every surface (engine
// events, status labels) uses consistent wording.
const (
	msgSynced          = "Synced to cloud"
	msgPulled          = "Pulled from cloud"
	msgPartialPush     = "Some items failed to sync"
	msgConflictsFound  = "Sync conflicts need review"
	msgCloudWiped      = "Cloud data deleted"
	msgSignInRequired  = "Sync failed: sign-in required"
	msgServerUnreached = "Sync failed: server unreachable"
	msgSyncFailed      = "Sync failed"

	statusLabelUnavailable = "Cloud sync off"
	statusLabelSyncing     = "Syncing..."
	statusLabelReady       = "Ready to sync"
	statusLabelSynced      = "Synced"
)

// failureMessage translates a transport error into the listener-facing
// message delivered with the error event.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return msgSignInRequired
	case errors.Is(err, adapter.ErrUnavailable):
		return msgServerUnreached
	default:
		return msgSyncFailed
	}
}
