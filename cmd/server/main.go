// Package main implements the entry point for the taskbook API server,
// a small task-tracking service backed by a single SQLite database file.
package main

import (
	"context"
	"log"
)

// main wires configuration, logging, storage, and the HTTP server
// together, then blocks until shutdown.
func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
