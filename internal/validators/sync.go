package validators

import (
	"context"
	"fmt"

	"github.com/altech-app/cloudsync/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a subset
// of fields (field-level scoping).
const (
	// FieldPayload targets the opaque document payload of a write request.
	FieldPayload = "payload"

	// FieldDeviceID targets the device attribution of a write request.
	FieldDeviceID = "device_id"

	// FieldQuotes targets the quote batch of an upsert request.
	FieldQuotes = "quotes"

	// FieldLength targets the declared batch length of an upsert request.
	FieldLength = "length"
)

// SyncRequestValidator implements the Validator interface for the sync API
// request models: DocumentKind, SetDocumentRequest, and UpsertQuotesRequest.
//
// It supports both value and pointer receivers for every model type and
// allows optional field-level scoping via variadic field name arguments.
type SyncRequestValidator struct {
}

// NewSyncRequestValidator constructs a new SyncRequestValidator and returns
// it as the Validator interface.
func NewSyncRequestValidator() Validator {
	return &SyncRequestValidator{}
}

// Validate dispatches validation to the appropriate type-specific method
// based on the dynamic type of value. Unknown types yield
// [ErrUnsupportedType].
func (v *SyncRequestValidator) Validate(ctx context.Context, value any, fields ...string) error {
	switch t := value.(type) {
	case models.DocumentKind:
		return v.validateKind(t)
	case models.SetDocumentRequest:
		return v.validateSetDocument(t, fields...)
	case *models.SetDocumentRequest:
		return v.validateSetDocument(*t, fields...)
	case models.UpsertQuotesRequest:
		return v.validateUpsertQuotes(t, fields...)
	case *models.UpsertQuotesRequest:
		return v.validateUpsertQuotes(*t, fields...)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}
}

func (v *SyncRequestValidator) validateKind(kind models.DocumentKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDocumentKind, kind)
	}
	return nil
}

func (v *SyncRequestValidator) validateSetDocument(req models.SetDocumentRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPayload, FieldDeviceID}
	}

	for _, field := range fields {
		switch field {
		case FieldPayload:
			if len(req.Payload) == 0 {
				return ErrEmptyPayload
			}
		case FieldDeviceID:
			if req.DeviceID == "" {
				return ErrEmptyDeviceID
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *SyncRequestValidator) validateUpsertQuotes(req models.UpsertQuotesRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldQuotes, FieldDeviceID, FieldLength}
	}

	for _, field := range fields {
		switch field {
		case FieldQuotes:
			if len(req.Quotes) == 0 {
				return ErrEmptyQuotes
			}
			for _, q := range req.Quotes {
				if q.ID == "" {
					return ErrEmptyQuoteID
				}
			}
		case FieldDeviceID:
			if req.DeviceID == "" {
				return ErrEmptyDeviceID
			}
		case FieldLength:
			if req.Length != 0 && req.Length != len(req.Quotes) {
				return fmt.Errorf("%w: declared %d, got %d", ErrLengthMismatch, req.Length, len(req.Quotes))
			}
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}

	return nil
}
