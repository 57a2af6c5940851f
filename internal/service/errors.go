package service

import "errors"

var (
	ErrInvalidResolution   = errors.New("invalid conflict resolution")
	ErrUnknownDocumentKind = errors.New("unknown document kind")

	ErrValidationNoQuotesProvided = errors.New("no quotes provided")
	ErrValidationEmptyQuoteID     = errors.New("empty quote ID provided")
	ErrValidationNoDeviceID       = errors.New("no device ID provided")
	ErrValidationNoAccountID      = errors.New("no account ID provided")
)
