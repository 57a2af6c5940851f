package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrUnknownDocumentKind = errors.New("unknown document kind")
	ErrEmptyPayload        = errors.New("payload is required")
	ErrEmptyDeviceID       = errors.New("device ID is required")
	ErrEmptyQuotes         = errors.New("quotes list cannot be empty")
	ErrEmptyQuoteID        = errors.New("quote ID cannot be empty")
	ErrLengthMismatch      = errors.New("declared length does not match quotes list")
)
