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

type documentService struct {
	documentRepository store.DocumentRepository
	validator          validators.Validator

	logger *logger.Logger
}

func NewDocumentService(documentRepository store.DocumentRepository, logger *logger.Logger) DocumentService {
	return &documentService{
		documentRepository: documentRepository,
		validator:          validators.NewSyncRequestValidator(),
		logger:             logger,
	}
}

func (s *documentService) GetDocument(ctx context.Context, accountID string, kind models.DocumentKind) (models.Document, error) {
	if err := s.validator.Validate(ctx, kind); err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrUnknownDocumentKind, err)
	}

	return s.documentRepository.GetDocument(ctx, accountID, kind)
}

func (s *documentService) SetDocument(ctx context.Context, accountID string, kind models.DocumentKind, req models.SetDocumentRequest) (time.Time, error) {
	if err := s.validator.Validate(ctx, kind); err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrUnknownDocumentKind, err)
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return time.Time{}, fmt.Errorf("document write validation: %w", err)
	}

	return s.documentRepository.SetDocument(ctx, accountID, kind, req.Payload, req.DeviceID)
}

func (s *documentService) DeleteDocuments(ctx context.Context, accountID string) error {
	return s.documentRepository.DeleteDocuments(ctx, accountID)
}
