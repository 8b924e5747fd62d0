// Package bootstrap wires configuration into the clients and services shared by the binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/streetperformersmap/tips-api/pkg/config"
	"github.com/streetperformersmap/tips-api/pkg/logging"
	"github.com/streetperformersmap/tips-api/pkg/notify"
	"github.com/streetperformersmap/tips-api/pkg/payments"
	"github.com/streetperformersmap/tips-api/pkg/processor/stripe"
	dydbstore "github.com/streetperformersmap/tips-api/pkg/storage/dynamodb"
	"go.uber.org/zap"
)

// Logger builds the process logger from configuration.
func Logger(cfg *config.Config) (*zap.Logger, error) {
	return logging.New(cfg.App.Name, cfg.App.LogPath, cfg.App.Debug)
}

// AWS loads the SDK configuration from the default credential chain.
func AWS(ctx context.Context) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return awsCfg, nil
}

// Store creates the DynamoDB-backed store.
func Store(awsCfg aws.Config, cfg *config.Config) *dydbstore.Store {
	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.AWS.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.AWS.EndpointURL)
		}
	})
	return dydbstore.New(client, cfg.AWS.TransactionsTableName, cfg.AWS.ConnectionsTableName)
}

// Notifier creates the delivery channel selected by NOTIFY_MODE. The hub is non-nil only in local mode.
func Notifier(awsCfg aws.Config, cfg *config.Config, log *zap.Logger) (notify.Notifier, *notify.Hub) {
	switch cfg.Notify.Mode {
	case notify.ModeSQS:
		client := sqs.NewFromConfig(awsCfg, func(o *sqs.Options) {
			if cfg.AWS.EndpointURL != "" {
				o.BaseEndpoint = aws.String(cfg.AWS.EndpointURL)
			}
		})
		return notify.NewSQSNotifier(client, cfg.AWS.NotificationsQueueURL), nil
	case notify.ModeLocal:
		hub := notify.NewHub(log)
		return hub, hub
	default:
		return notify.NoOp{}, nil
	}
}

// PaymentsService wires the payments service with Stripe as the processor.
func PaymentsService(store *dydbstore.Store, notifier notify.Notifier, cfg *config.Config, log *zap.Logger) *payments.Service {
	proc := stripe.New(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	return payments.NewService(store, proc, notifier, cfg.Tips.Fees, cfg.Tips.Currency, log)
}
