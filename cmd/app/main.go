// Command app serves the natal chart HTTP API.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("natal-chart: failed to wire application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("natal-chart: server stopped with error: %v", err)
	}
}
