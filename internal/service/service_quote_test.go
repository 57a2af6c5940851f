package service

import (
	"context"
	"testing"
	"time"

	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/mock"
	"github.com/altech-app/cloudsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestQuoteService(t *testing.T, ctrl *gomock.Controller) (QuoteService, *mock.MockQuoteRepository) {
	t.Helper()
	mockRepo := mock.NewMockQuoteRepository(ctrl)
	return NewQuoteService(mockRepo, logger.Nop()), mockRepo
}

func TestQuoteService_ListQuotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestQuoteService(t, ctrl)
	ctx := context.Background()

	want := []models.Quote{{ID: "q1", Name: "Warehouse"}}
	mockRepo.EXPECT().ListQuotes(ctx, "acc-1").Return(want, nil)

	got, err := svc.ListQuotes(ctx, "acc-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestQuoteService_UpsertQuotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestQuoteService(t, ctrl)
	ctx := context.Background()

	quotes := []models.Quote{{ID: "q1"}, {ID: "q2"}}
	writtenAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockRepo.EXPECT().UpsertQuotes(ctx, "acc-1", quotes, "dev_a_1").Return(writtenAt, nil)

	got, err := svc.UpsertQuotes(ctx, "acc-1", models.UpsertQuotesRequest{
		Quotes: quotes, DeviceID: "dev_a_1", Length: 2,
	})
	require.NoError(t, err)
	assert.True(t, writtenAt.Equal(got))
}

func TestQuoteService_UpsertQuotes_ValidationFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestQuoteService(t, ctrl)
	ctx := context.Background()

	// Empty batch never reaches the repository.
	_, err := svc.UpsertQuotes(ctx, "acc-1", models.UpsertQuotesRequest{DeviceID: "dev_a_1"})
	require.Error(t, err)

	// Declared length must match the batch.
	_, err = svc.UpsertQuotes(ctx, "acc-1", models.UpsertQuotesRequest{
		Quotes: []models.Quote{{ID: "q1"}}, DeviceID: "dev_a_1", Length: 5,
	})
	require.Error(t, err)
}

func TestQuoteService_DeleteQuotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestQuoteService(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().DeleteQuotes(ctx, "acc-1").Return(nil)

	assert.NoError(t, svc.DeleteQuotes(ctx, "acc-1"))
}
