package models

import (
	"encoding/json"
	"time"
)

// ConflictKind discriminates the two shapes a sync conflict can take.
type ConflictKind string

const (
	// ConflictDocument is a divergence on one named document: both sides
	// hold a full payload and the caller must pick one.
	ConflictDocument ConflictKind = "document"

	// ConflictQuotes reports quote pairs that diverged during a merge.
	// Both versions already survive in the merged collection; no choice is
	// required, only review.
	ConflictQuotes ConflictKind = "quotes"
)

// Conflict is the tagged union returned by a pull. Exactly one of Document or
// Quotes is non-nil, selected by Kind.
type Conflict struct {
	Kind     ConflictKind      `json:"kind"`
	Document *DocumentConflict `json:"document,omitempty"`
	Quotes   *QuoteConflict    `json:"quotes,omitempty"`
}

// DocumentConflict carries both versions of a diverged named document along
// with the evidence that triggered the classification. It exists only
// transiently: it is surfaced by a pull and dropped when the next pull
// recomputes the conflict set.
type DocumentConflict struct {
	DocumentKind    DocumentKind    `json:"document_kind"`
	RemotePayload   json.RawMessage `json:"remote_payload"`
	LocalPayload    json.RawMessage `json:"local_payload"`
	RemoteWrittenAt time.Time       `json:"remote_written_at"`
	RemoteDeviceID  string          `json:"remote_device_id"`
	LocalWatermark  time.Time       `json:"local_watermark"`
}

// QuotePair links a locally kept quote to the conflict copy created from its
// divergent remote counterpart.
type QuotePair struct {
	OriginalID string `json:"original_id"`
	ConflictID string `json:"conflict_id"`
}

// QuoteConflict lists every pair produced by one merge pass.
type QuoteConflict struct {
	Pairs []QuotePair `json:"pairs"`
}

// Resolution is the caller's choice when resolving a document conflict.
type Resolution string

const (
	// ResolutionLocal keeps the local payload and re-pushes it so the remote
	// copy converges.
	ResolutionLocal Resolution = "local"

	// ResolutionRemote applies the remote payload to the local store.
	ResolutionRemote Resolution = "remote"
)

// Valid reports whether r is a recognised resolution choice.
func (r Resolution) Valid() bool {
	return r == ResolutionLocal || r == ResolutionRemote
}
