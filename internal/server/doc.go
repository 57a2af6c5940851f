// Package server wires and runs the sync server's HTTP transport.
//
// It orchestrates the server lifecycle: startup, OS signal handling, and
// graceful shutdown of in-flight requests.
package server
