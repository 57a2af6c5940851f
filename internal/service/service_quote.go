package service

import (
	"context"
	"fmt"
	"time"

	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/store"
	"github.com/altech-app/cloudsync/internal/validators"
	"github.com/altech-app/cloudsync/models"
)

type quoteService struct {
	quoteRepository store.QuoteRepository
	validator       validators.Validator

	logger *logger.Logger
}

func NewQuoteService(quoteRepository store.QuoteRepository, logger *logger.Logger) QuoteService {
	return &quoteService{
		quoteRepository: quoteRepository,
		validator:       validators.NewSyncRequestValidator(),
		logger:          logger,
	}
}

func (s *quoteService) ListQuotes(ctx context.Context, accountID string) ([]models.Quote, error) {
	return s.quoteRepository.ListQuotes(ctx, accountID)
}

func (s *quoteService) UpsertQuotes(ctx context.Context, accountID string, req models.UpsertQuotesRequest) (time.Time, error) {
	if err := s.validator.Validate(ctx, req); err != nil {
		return time.Time{}, fmt.Errorf("quote upsert validation: %w", err)
	}

	return s.quoteRepository.UpsertQuotes(ctx, accountID, req.Quotes, req.DeviceID)
}

func (s *quoteService) DeleteQuotes(ctx context.Context, accountID string) error {
	return s.quoteRepository.DeleteQuotes(ctx, accountID)
}
