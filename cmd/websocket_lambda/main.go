package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/streetperformersmap/tips-api/pkg/bootstrap"
	"github.com/streetperformersmap/tips-api/pkg/config"
	wshandlers "github.com/streetperformersmap/tips-api/pkg/handlers/websockets"
	"go.uber.org/zap"
)

var (
	handler *wshandlers.Handler
	logger  *zap.Logger
)

func init() {
	cfg, err := config.Load(config.RequireConnections)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err = bootstrap.Logger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	awsCfg, err := bootstrap.AWS(context.Background())
	if err != nil {
		logger.Fatal("Failed to load AWS config", zap.Error(err))
	}

	handler = wshandlers.NewHandler(bootstrap.Store(awsCfg, cfg), logger)
}

func main() {
	defer logger.Sync() //nolint:errcheck
	lambda.Start(handler.Route)
}
