// Package client implements the sync client application runtime.
//
// It wires the local store, the remote adapter, the sync engine, and the
// background sync job into a single process lifecycle.
package client
