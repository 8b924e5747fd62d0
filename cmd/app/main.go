package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/streetperformersmap/tips-api/pkg/bootstrap"
	"github.com/streetperformersmap/tips-api/pkg/config"
	"github.com/streetperformersmap/tips-api/pkg/handlers"
	wshandlers "github.com/streetperformersmap/tips-api/pkg/handlers/websockets"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load(config.RequireTransactions | config.RequireStripe | config.RequireWebhookSecret)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := bootstrap.Logger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	awsCfg, err := bootstrap.AWS(context.Background())
	if err != nil {
		logger.Fatal("Failed to load AWS config", zap.Error(err))
	}

	store := bootstrap.Store(awsCfg, cfg)
	notifier, hub := bootstrap.Notifier(awsCfg, cfg, logger)
	service := bootstrap.PaymentsService(store, notifier, cfg, logger)

	handler := handlers.NewApiHandler(service, logger)
	router := handlers.NewRouter(handler, logger)
	if hub != nil {
		router.Handle("/ws", wshandlers.NewLocalHandler(hub, cfg.App.Debug, logger))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("port", cfg.App.Port),
			zap.String("notify_mode", string(cfg.Notify.Mode)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
