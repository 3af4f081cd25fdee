package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ishqrisk/ishqrisk-backend/internal/config"
	"github.com/ishqrisk/ishqrisk-backend/internal/infrastructure/container"
	"github.com/ishqrisk/ishqrisk-backend/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(&cfg.Logging)

	// Initialize dependency injection container
	app, err := container.NewContainer(cfg)
	if err != nil {
		logger.L().Error("failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.L().Error("error closing application", "error", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Background expiry sweeper: sessions also expire lazily on access, the
	// sweep just keeps idle ones from lingering as active.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go func() {
		ticker := time.NewTicker(cfg.Matching.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				expired, err := app.Session.SweepExpired(sweepCtx)
				if err != nil {
					logger.L().Warn("expiry sweep failed", "error", err)
					continue
				}
				if expired > 0 {
					logger.L().Info("expiry sweep finished", "expired", expired)
				}
			}
		}
	}()

	// Start server in a goroutine
	go func() {
		if err := app.Server.Start(); err != nil {
			logger.L().Error("server error", "error", err)
			quit <- syscall.SIGTERM
		}
	}()

	logger.L().Info("server started", "host", cfg.Server.Host, "port", cfg.Server.Port)

	// Wait for interrupt signal
	<-quit

	stopSweep()

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logger.L().Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.L().Info("server exited properly")
}
