package client

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/altech-app/cloudsync/internal/adapter"
	"github.com/altech-app/cloudsync/internal/config"
	"github.com/altech-app/cloudsync/internal/device"
	"github.com/altech-app/cloudsync/internal/logger"
	"github.com/altech-app/cloudsync/internal/service"
	"github.com/altech-app/cloudsync/internal/store"
	"github.com/altech-app/cloudsync/models"
)

type App struct {
	services *service.ClientServices
	cfg      *config.ClientConfig
	logger   *logger.Logger
}

func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(cfg.Storage.Local, log)
	if err != nil {
		return nil, fmt.Errorf("create client storages: %w", err)
	}

	remote, err := adapter.NewHTTPRemoteStore(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create remote store adapter: %w", err)
	}

	deviceID := device.EnsureID(context.Background(), storages.LocalStore, log)
	log.Info().Str("device_id", deviceID).Msg("device identity ready")

	services := service.NewClientServices(storages.LocalStore, remote, deviceID, cfg.Workers, log)

	return &App{
		services: services,
		cfg:      cfg,
		logger:   log,
	}, nil
}

// Run performs an initial full sync, starts the periodic background sync job,
// and blocks until the process receives a termination signal.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// Sync outcomes go to the terminal; structured logging stays in the
	// client log file.
	unsubscribe := a.services.Engine.Subscribe(func(event models.SyncEvent) {
		fmt.Fprintf(os.Stdout, "[%s] %s\n", event.Kind, event.Message)
	})
	defer unsubscribe()

	conflicts, err := a.services.Engine.FullSync(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("initial sync failed")
	}
	a.reportConflicts(conflicts)

	a.services.SyncJob.Start(ctx, a.cfg.Workers.SyncInterval)
	defer a.services.SyncJob.Stop()

	<-ctx.Done()
	a.logger.Info().Msg("client shutting down")

	return nil
}

// reportConflicts prints every unresolved divergence found by a pull so the
// operator can resolve document conflicts explicitly. Quote conflicts are
// already materialised as conflict copies and only need review.
func (a *App) reportConflicts(conflicts []models.Conflict) {
	for _, conflict := range conflicts {
		switch conflict.Kind {
		case models.ConflictDocument:
			fmt.Fprintf(os.Stdout, "conflict: document %q diverged, resolve with keep-local or keep-remote\n",
				conflict.Document.DocumentKind)
		case models.ConflictQuotes:
			fmt.Fprintf(os.Stdout, "conflict: %d quote(s) diverged, conflict copies were created\n",
				len(conflict.Quotes.Pairs))
		}
	}
}
