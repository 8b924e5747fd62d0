package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/streetperformersmap/tips-api/pkg/bootstrap"
	"github.com/streetperformersmap/tips-api/pkg/config"
	"github.com/streetperformersmap/tips-api/pkg/notify"
	"github.com/streetperformersmap/tips-api/pkg/websockets"
	"go.uber.org/zap"
)

var (
	consumer *notify.Consumer
	logger   *zap.Logger
)

func init() {
	cfg, err := config.Load(config.RequireConnections | config.RequireWebsocketEndpoint)
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

	store := bootstrap.Store(awsCfg, cfg)
	publisher := websockets.NewGatewayPublisher(awsCfg, store, cfg.AWS.WebsocketAPIEndpoint, logger)
	consumer = notify.NewConsumer(publisher, logger)
}

func main() {
	defer logger.Sync() //nolint:errcheck
	lambda.Start(consumer.HandleSQSEvent)
}
