package client

// Client defines the minimal lifecycle contract for a runnable client
// application.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run() error
}
