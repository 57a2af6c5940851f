// Package app contains shared application-layer constants used across the
// cloudsync server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgUnknownDocumentKind is returned when a document request targets a
	// kind outside the known set.
	MsgUnknownDocumentKind = "unknown document kind"

	// MsgDocumentNotFound is returned when a read targets a document kind
	// the account has never written.
	MsgDocumentNotFound = "document not found"

	// MsgNoQuotesProvided is returned when a quote upsert request contains
	// an empty batch.
	MsgNoQuotesProvided = "no quotes provided"

	// MsgEmptyQuoteID is returned when at least one quote in an upsert
	// batch has a blank (empty string) ID.
	MsgEmptyQuoteID = "empty quote ID provided"

	// MsgNoDeviceIDProvided is returned when a write request omits the
	// device attribution required for sync decisions.
	MsgNoDeviceIDProvided = "no device ID provided"

	// MsgNoAccountIDProvided is returned when a handler requires an account
	// ID (extracted from the JWT claim) but none is present in the request
	// context.
	MsgNoAccountIDProvided = "no account ID provided"
)
