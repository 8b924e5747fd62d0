package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/streetperformersmap/tips-api/pkg/bootstrap"
	"github.com/streetperformersmap/tips-api/pkg/config"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/payments"
)

var Version = "dev"

// tipsService is the part of the payments service the operator commands drive.
type tipsService interface {
	GetTransaction(ctx context.Context, paymentIntentID string) (*models.Transaction, error)
	Reconcile(ctx context.Context, paymentIntentID string) (*payments.ReconcileResult, error)
	SweepPending(ctx context.Context, olderThan time.Duration) (*payments.SweepReport, error)
}

// newService is replaced in tests.
var newService = func(ctx context.Context) (tipsService, *config.Config, error) {
	cfg, err := config.Load(config.RequireTransactions | config.RequireStripe)
	if err != nil {
		return nil, nil, err
	}
	logger, err := bootstrap.Logger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	awsCfg, err := bootstrap.AWS(ctx)
	if err != nil {
		return nil, nil, err
	}
	store := bootstrap.Store(awsCfg, cfg)
	notifier, _ := bootstrap.Notifier(awsCfg, cfg, logger)
	return bootstrap.PaymentsService(store, notifier, cfg, logger), cfg, nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tipsctl",
		Short:         "tipsctl - operator tool for tip transactions",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(sweepCmd())

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
