// Package device manages the stable identifier that distinguishes this
// installation from other devices sharing the same account.
//
// The identifier is generated once, persisted in the local store, and used
// only as an attribution tag on remote writes. It is never a security
// credential: the sync engine uses it to recognise its own prior writes so a
// device cannot conflict with itself.
package device

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/altech-app/cloudsync/internal/logger"
)

// MetaStore is the slice of the local store the device identity needs:
// a durable string key/value table. Absent keys read as empty strings.
type MetaStore interface {
	GetMeta(ctx context.Context, key string) (string, error)
	SetMeta(ctx context.Context, key, value string) error
}

const metaKeyDeviceID = "device_id"

// EnsureID returns the persisted device identifier, generating and storing a
// new one on a fresh installation.
//
// Persistence failure is deliberately non-fatal: the generated identifier is
// still returned, degrading attribution (the device may later conflict with
// its own old writes) but never blocking sync.
func EnsureID(ctx context.Context, store MetaStore, log *logger.Logger) string {
	id, err := store.GetMeta(ctx, metaKeyDeviceID)
	if err != nil {
		log.Warn().Err(err).Str("func", "device.EnsureID").Msg("reading device id failed, generating ephemeral one")
		return newID()
	}
	if id != "" {
		return id
	}

	id = newID()
	if err := store.SetMeta(ctx, metaKeyDeviceID, id); err != nil {
		log.Warn().Err(err).Str("func", "device.EnsureID").Msg("persisting device id failed, attribution degraded")
	}
	return id
}

// newID builds an identifier of the form dev_<base36 unix-ms>_<8 hex chars>.
// Collision-improbable is sufficient; no global uniqueness is guaranteed.
func newID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "dev_" + strconv.FormatInt(time.Now().UnixMilli(), 36) + "_" + suffix
}
