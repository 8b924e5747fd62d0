package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/streetperformersmap/tips-api/pkg/bootstrap"
	"github.com/streetperformersmap/tips-api/pkg/config"
	"github.com/streetperformersmap/tips-api/pkg/payments"
	"go.uber.org/zap"
)

var (
	service      *payments.Service
	logger       *zap.Logger
	pendingAfter = config.DefaultPendingAfter
)

func init() {
	cfg, err := config.Load(config.RequireTransactions | config.RequireStripe)
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
	notifier, _ := bootstrap.Notifier(awsCfg, cfg, logger)
	service = bootstrap.PaymentsService(store, notifier, cfg, logger)
	pendingAfter = cfg.Reconcile.PendingAfter
}

// HandleRequest is triggered by an EventBridge schedule and settles stale pending tips.
func HandleRequest(ctx context.Context) error {
	logger.Info("Starting pending transaction sweep", zap.Duration("older_than", pendingAfter))

	report, err := service.SweepPending(ctx, pendingAfter)
	if err != nil {
		logger.Error("Pending sweep failed", zap.Error(err))
		return err
	}

	for _, failure := range report.Errors {
		logger.Warn("Could not reconcile transaction",
			zap.String("payment_intent_id", failure.PaymentIntentID),
			zap.String("reason", failure.Reason),
		)
	}

	logger.Info("Pending sweep finished",
		zap.Int("checked", report.Checked),
		zap.Int("completed", report.Completed),
		zap.Int("failed", report.Failed),
		zap.Int("still_pending", report.StillPending),
		zap.Int("errors", len(report.Errors)),
	)
	return nil
}

func main() {
	defer logger.Sync() //nolint:errcheck
	lambda.Start(HandleRequest)
}
