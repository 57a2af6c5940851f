package validators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/altech-app/cloudsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DocumentKind(t *testing.T) {
	v := NewSyncRequestValidator()

	for _, kind := range models.KnownDocumentKinds() {
		assert.NoError(t, v.Validate(context.Background(), kind))
	}

	err := v.Validate(context.Background(), models.DocumentKind("vaultItems"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDocumentKind)
}

func TestValidate_SetDocumentRequest(t *testing.T) {
	v := NewSyncRequestValidator()

	tests := []struct {
		name    string
		req     models.SetDocumentRequest
		fields  []string
		wantErr error
	}{
		{
			name: "valid",
			req:  models.SetDocumentRequest{Payload: json.RawMessage(`{}`), DeviceID: "dev_a_1"},
		},
		{
			name:    "missing payload",
			req:     models.SetDocumentRequest{DeviceID: "dev_a_1"},
			wantErr: ErrEmptyPayload,
		},
		{
			name:    "missing device id",
			req:     models.SetDocumentRequest{Payload: json.RawMessage(`{}`)},
			wantErr: ErrEmptyDeviceID,
		},
		{
			name:   "scoped to payload ignores device id",
			req:    models.SetDocumentRequest{Payload: json.RawMessage(`{}`)},
			fields: []string{FieldPayload},
		},
		{
			name:    "unknown field",
			req:     models.SetDocumentRequest{Payload: json.RawMessage(`{}`), DeviceID: "dev_a_1"},
			fields:  []string{"bogus"},
			wantErr: ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req, tt.fields...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_UpsertQuotesRequest(t *testing.T) {
	v := NewSyncRequestValidator()

	tests := []struct {
		name    string
		req     models.UpsertQuotesRequest
		wantErr error
	}{
		{
			name: "valid",
			req: models.UpsertQuotesRequest{
				Quotes:   []models.Quote{{ID: "q1"}, {ID: "q2"}},
				DeviceID: "dev_a_1",
				Length:   2,
			},
		},
		{
			name:    "empty batch",
			req:     models.UpsertQuotesRequest{DeviceID: "dev_a_1"},
			wantErr: ErrEmptyQuotes,
		},
		{
			name: "blank quote id",
			req: models.UpsertQuotesRequest{
				Quotes:   []models.Quote{{ID: "q1"}, {ID: ""}},
				DeviceID: "dev_a_1",
			},
			wantErr: ErrEmptyQuoteID,
		},
		{
			name: "length mismatch",
			req: models.UpsertQuotesRequest{
				Quotes:   []models.Quote{{ID: "q1"}},
				DeviceID: "dev_a_1",
				Length:   3,
			},
			wantErr: ErrLengthMismatch,
		},
		{
			name: "missing device id",
			req: models.UpsertQuotesRequest{
				Quotes: []models.Quote{{ID: "q1"}},
			},
			wantErr: ErrEmptyDeviceID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_UnsupportedType(t *testing.T) {
	v := NewSyncRequestValidator()

	err := v.Validate(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}
