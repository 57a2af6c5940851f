package models

import (
	"encoding/json"
	"time"
)

// SetDocumentRequest is the body of PUT /api/sync/documents/{kind}.
// The server assigns the write timestamp; the client only supplies the
// payload and its device attribution.
type SetDocumentRequest struct {
	Payload  json.RawMessage `json:"payload"`
	DeviceID string          `json:"device_id"`
}

// SetDocumentResponse returns the server-assigned timestamp of the write.
type SetDocumentResponse struct {
	WrittenAt time.Time `json:"written_at"`
}

// QuoteListResponse is the body of GET /api/sync/quotes.
type QuoteListResponse struct {
	Quotes []Quote `json:"quotes"`
	Length int     `json:"length"`
}

// UpsertQuotesRequest is the body of POST /api/sync/quotes. The batch is
// applied all-or-nothing; on success every listed quote carries the same
// server-assigned timestamp.
type UpsertQuotesRequest struct {
	Quotes   []Quote `json:"quotes"`
	DeviceID string  `json:"device_id"`
	Length   int     `json:"length"`
}

// UpsertQuotesResponse returns the server-assigned timestamp applied to the
// whole batch.
type UpsertQuotesResponse struct {
	WrittenAt time.Time `json:"written_at"`
}
