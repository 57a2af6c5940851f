package http

import (
	"github.com/altech-app/cloudsync/internal/config"
	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/service"
)

type Handler struct {
	services *service.Services
	app      config.App

	logger *logger.Logger
}

func NewHandler(services *service.Services, app config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		app:      app,
		logger:   logger,
	}
}
