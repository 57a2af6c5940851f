package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/mock"
	"github.com/altech-app/cloudsync/internal/store"
	"github.com/altech-app/cloudsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestDocumentService(t *testing.T, ctrl *gomock.Controller) (DocumentService, *mock.MockDocumentRepository) {
	t.Helper()
	mockRepo := mock.NewMockDocumentRepository(ctrl)
	return NewDocumentService(mockRepo, logger.Nop()), mockRepo
}

func TestDocumentService_GetDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestDocumentService(t, ctrl)
	ctx := context.Background()

	want := models.Document{
		Kind:      models.KindSettings,
		Payload:   json.RawMessage(`{"theme":"dark"}`),
		WrittenAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		DeviceID:  "dev_a_1",
	}
	mockRepo.EXPECT().GetDocument(ctx, "acc-1", models.KindSettings).Return(want, nil)

	got, err := svc.GetDocument(ctx, "acc-1", models.KindSettings)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDocumentService_GetDocument_UnknownKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestDocumentService(t, ctrl)

	_, err := svc.GetDocument(context.Background(), "acc-1", models.DocumentKind("vault"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownDocumentKind)
}

func TestDocumentService_GetDocument_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestDocumentService(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().GetDocument(ctx, "acc-1", models.KindReminders).
		Return(models.Document{}, store.ErrDocumentNotFound)

	_, err := svc.GetDocument(ctx, "acc-1", models.KindReminders)
	assert.ErrorIs(t, err, store.ErrDocumentNotFound)
}

func TestDocumentService_SetDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestDocumentService(t, ctrl)
	ctx := context.Background()

	payload := json.RawMessage(`{"theme":"dark"}`)
	writtenAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockRepo.EXPECT().SetDocument(ctx, "acc-1", models.KindSettings, payload, "dev_a_1").
		Return(writtenAt, nil)

	got, err := svc.SetDocument(ctx, "acc-1", models.KindSettings,
		models.SetDocumentRequest{Payload: payload, DeviceID: "dev_a_1"})
	require.NoError(t, err)
	assert.True(t, writtenAt.Equal(got))
}

func TestDocumentService_SetDocument_ValidationFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestDocumentService(t, ctrl)
	ctx := context.Background()

	// Unknown kind rejected before the repository is touched.
	_, err := svc.SetDocument(ctx, "acc-1", models.DocumentKind("vault"),
		models.SetDocumentRequest{Payload: json.RawMessage(`{}`), DeviceID: "dev_a_1"})
	assert.ErrorIs(t, err, ErrUnknownDocumentKind)

	// Missing device attribution rejected.
	_, err = svc.SetDocument(ctx, "acc-1", models.KindSettings,
		models.SetDocumentRequest{Payload: json.RawMessage(`{}`)})
	require.Error(t, err)
}

func TestDocumentService_DeleteDocuments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestDocumentService(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().DeleteDocuments(ctx, "acc-1").Return(nil)

	assert.NoError(t, svc.DeleteDocuments(ctx, "acc-1"))
}
