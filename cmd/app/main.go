package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "cko-gateway/docs"
	"cko-gateway/internal/components"
	"cko-gateway/internal/config"

	"golang.org/x/sync/errgroup"
)

// @title Payment Gateway API
// @version 1.0
// @description API server for accepting and processing card payments
// @host localhost:7070
// @BasePath /
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Println(err.Error())
		return
	}

	logger := components.SetupLogger(*cfg)

	eg, ctx := errgroup.WithContext(context.Background())

	sigQuit := make(chan os.Signal, 1)
	signal.Notify(sigQuit, os.Interrupt, syscall.SIGTERM)

	c, err := components.InitComponents(ctx, cfg, logger)
	if err != nil {
		logger.Error("bad configuration", slog.String("error", err.Error()))
		return
	}

	eg.Go(func() error {
		if err := c.HttpServer.Run(ctx); err != nil {
			logger.Error("failed to run HttpServer", slog.String("error", err.Error()))
			return err
		}
		return nil
	})

	select {
	case <-sigQuit:
		logger.Info("shutdown signal received")
	case <-ctx.Done():
	}

	if err := c.Shutdown(); err != nil {
		logger.Error("error while shutting down the components", slog.String("error", err.Error()))
	}

	_ = eg.Wait()
	logger.Info("payment gateway stopped")
}
