package service

import (
	"github.com/altech-app/cloudsync/internal/adapter"
	"github.com/altech-app/cloudsync/internal/config"
	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/store"
)

type ClientServices struct {
	Engine  SyncEngine
	SyncJob ClientSyncJob
}

func NewClientServices(localStore store.LocalStore, remote adapter.RemoteStore, deviceID string, cfg config.Workers, logger *logger.Logger) *ClientServices {
	engine := NewSyncEngine(localStore, remote, deviceID, cfg.PushDebounce, logger)

	return &ClientServices{
		Engine:  engine,
		SyncJob: NewClientSyncJob(engine),
	}
}
