// Package main provides the entry point for the ReelRead server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/reelread/reelread-server/internal/di"
	"github.com/reelread/reelread-server/internal/di/providers"
	"github.com/reelread/reelread-server/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	// The DI container handles shutdown order automatically
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// The bridge store uses a wrapper type, close it explicitly
	if bridgeHandle, err := do.Invoke[*providers.BridgeHandle](injector); err == nil {
		if err := bridgeHandle.Shutdown(); err != nil {
			log.Error("Failed to close genre bridge", "error", err)
		}
	}

	log.Info("Goodbye")
}
