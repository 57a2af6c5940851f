package models

import "time"

// EventKind is the severity of a sync status notification.
type EventKind string

const (
	EventSuccess EventKind = "success"
	EventError   EventKind = "error"
	EventWarning EventKind = "warning"
	EventInfo    EventKind = "info"
)

// SyncEvent is delivered to subscribed listeners after every sync operation.
// It is purely observational; listeners return nothing.
type SyncEvent struct {
	Message string    `json:"message"`
	Kind    EventKind `json:"kind"`
}

// PushOutcome records the result of pushing one document kind (or the quotes
// collection) to the remote store.
type PushOutcome struct {
	Key       string    `json:"key"`
	Err       error     `json:"-"`
	Skipped   bool      `json:"skipped,omitempty"`
	WrittenAt time.Time `json:"written_at,omitempty"`
}

// PushReport aggregates the per-kind outcomes of one push. Per-kind writes are
// independent, so a push can succeed partially: the failed kinds keep their
// local data and stale watermarks and will retry on the next push.
type PushReport struct {
	Outcomes []PushOutcome `json:"outcomes"`
}

// Attempted returns the number of kinds for which a remote write was issued.
func (r PushReport) Attempted() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Skipped {
			n++
		}
	}
	return n
}

// Failed returns the number of attempted writes that ended in error.
func (r PushReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Skipped && o.Err != nil {
			n++
		}
	}
	return n
}

// Partial reports whether some, but not all, attempted writes failed.
func (r PushReport) Partial() bool {
	f := r.Failed()
	return f > 0 && f < r.Attempted()
}

// Total reports whether every attempted write failed. A total failure usually
// indicates connectivity loss rather than data-level problems and is surfaced
// differently from a partial one.
func (r PushReport) Total() bool {
	a := r.Attempted()
	return a > 0 && r.Failed() == a
}

// SyncState is the coarse engine state exposed for status displays.
type SyncState string

const (
	SyncUnavailable SyncState = "unavailable"
	SyncReady       SyncState = "ready"
	SyncInProgress  SyncState = "syncing"
	SyncSynced      SyncState = "synced"
)

// SyncStatus is a point-in-time snapshot of the engine for UI consumption.
type SyncStatus struct {
	State    SyncState `json:"state"`
	Label    string    `json:"label"`
	LastSync time.Time `json:"last_sync,omitempty"`
}
