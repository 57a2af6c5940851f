package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// DocumentKind identifies one of the named singleton documents that the sync
// engine keeps consistent across devices. The payload behind each kind is
// opaque to the engine; only the kind, the server-assigned write timestamp,
// and the writing device matter for sync decisions.
type DocumentKind string

const (
	KindSettings        DocumentKind = "settings"
	KindCurrentForm     DocumentKind = "currentForm"
	KindComplianceState DocumentKind = "complianceState"
	KindReferenceCards  DocumentKind = "referenceCards"
	KindReminders       DocumentKind = "reminders"
)

// QuoteCollectionKey is the watermark key used for the quotes collection,
// which is synchronised per-item rather than as a single document.
const QuoteCollectionKey = "quotes"

// KnownDocumentKinds returns every document kind the engine synchronises,
// in stable order.
func KnownDocumentKinds() []DocumentKind {
	return []DocumentKind{
		KindSettings,
		KindCurrentForm,
		KindComplianceState,
		KindReferenceCards,
		KindReminders,
	}
}

// Valid reports whether k is one of the known document kinds.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindSettings, KindCurrentForm, KindComplianceState, KindReferenceCards, KindReminders:
		return true
	default:
		return false
	}
}

func (k DocumentKind) String() string { return string(k) }

// Document is a named singleton blob of application state as stored remotely.
// WrittenAt is assigned by the server on every write and is monotonic per
// account; DeviceID attributes the write to the installation that produced it.
type Document struct {
	Kind      DocumentKind    `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	WrittenAt time.Time       `json:"written_at"`
	DeviceID  string          `json:"device_id"`
}

// PayloadEqual reports whether two opaque payloads carry the same data.
// Payloads are compared structurally: both are parsed and re-encoded through
// encoding/json so that key order and insignificant whitespace do not produce
// false divergence. Invalid JSON falls back to a raw byte comparison.
func PayloadEqual(a, b json.RawMessage) bool {
	ca, errA := canonicalJSON(a)
	cb, errB := canonicalJSON(b)
	if errA != nil || errB != nil {
		return bytes.Equal(a, b)
	}
	return bytes.Equal(ca, cb)
}

func canonicalJSON(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
