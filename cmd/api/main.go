// Package main provides the entry point for the Defense Index server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/globaldefense/index-server/internal/di"
	"github.com/globaldefense/index-server/internal/di/providers"
	"github.com/globaldefense/index-server/internal/logger"
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	// Get logger for shutdown messages
	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// Shutdown all services in reverse order
	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The syncer and backend use wrapper types, so close them explicitly.
	if syncerHandle, err := do.Invoke[*providers.SyncerHandle](injector); err == nil {
		log.Info("Stopping realtime syncer...")
		if err := syncerHandle.Shutdown(); err != nil {
			log.Error("Failed to stop syncer", "error", err)
		}
	}

	if backendHandle, err := do.Invoke[*providers.BackendHandle](injector); err == nil {
		log.Info("Closing database...")
		if err := backendHandle.Shutdown(); err != nil {
			log.Error("Failed to close database", "error", err)
		} else {
			log.Info("Database closed successfully")
		}
	}

	log.Info("See you space cowboy...")
}
