// Package main implements the todo API server: account registration
// with cookie-based JWT sessions, per-user todo CRUD with cached
// statistics, and the asynchronous welcome-email flow.
package main

import (
	"context"
	"log"
)

func main() {
	ctx := context.Background()

	app, err := initializeApp(ctx)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
