package service

import (
	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/store"
)

type Services struct {
	DocumentService DocumentService
	QuoteService    QuoteService
}

func NewServices(storages store.Storages, logger *logger.Logger) *Services {
	return &Services{
		DocumentService: NewDocumentService(storages.DocumentRepository, logger),
		QuoteService:    NewQuoteService(storages.QuoteRepository, logger),
	}
}
