package config

import (
	"fmt"
	"time"
)

// ServerConfig is the view of the merged configuration consumed by the remote
// store server binary.
type ServerConfig struct {
	// App contains application-level settings (token key, version).
	App App
	// Server contains the listen address and request timeout.
	Server Server
	// Storage contains the account database settings.
	Storage Storage
}

// ClientConfig is the view of the merged configuration consumed by the sync
// client binary.
type ClientConfig struct {
	// Adapter contains remote store connection settings.
	Adapter Adapter
	// Storage contains the local sqlite settings.
	Storage Storage
	// Workers contains background sync job settings.
	Workers Workers
}

// GetServerConfig builds and validates a server-specific config view from the
// merged structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		App:     cfg.App,
		Server:  cfg.Server,
		Storage: cfg.Storage,
	}
	if serverCfg.Server.RequestTimeout == 0 {
		serverCfg.Server.RequestTimeout = 30 * time.Second
	}

	return serverCfg, serverCfg.validate()
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration. Missing optional durations receive
// defaults here so the engine never sees a zero debounce window.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: cfg.Adapter,
		Storage: cfg.Storage,
		Workers: cfg.Workers,
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = 15 * time.Second
	}
	if clientCfg.Workers.SyncInterval == 0 {
		clientCfg.Workers.SyncInterval = 5 * time.Minute
	}
	if clientCfg.Workers.PushDebounce == 0 {
		clientCfg.Workers.PushDebounce = 3 * time.Second
	}

	return clientCfg, clientCfg.validate()
}
