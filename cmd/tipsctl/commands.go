package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/streetperformersmap/tips-api/pkg/config"
	"github.com/streetperformersmap/tips-api/pkg/mapping"
	"github.com/streetperformersmap/tips-api/pkg/payments"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [payment-intent-id]",
		Short: "Print the stored transaction for a payment intent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd.Context())
			if err != nil {
				return err
			}

			tx, err := svc.GetTransaction(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("lookup failed: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(mapping.ToApiTransaction(tx))
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile [payment-intent-id]",
		Short: "Ask the processor for a payment intent's status and settle the transaction",
		Long: `Manually reconcile one transaction when its webhook never arrived.

Examples:
  tipsctl reconcile pi_3Nx...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(cmd.Context())
			if err != nil {
				return err
			}

			result, err := svc.Reconcile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("reconcile failed: %w", err)
			}

			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func sweepCmd() *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Reconcile every transaction still pending after the given age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("older-than") && cfg != nil {
				olderThan = cfg.Reconcile.PendingAfter
			}

			report, err := svc.SweepPending(cmd.Context(), olderThan)
			if err != nil {
				return fmt.Errorf("sweep failed: %w", err)
			}

			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", config.DefaultPendingAfter, "minimum age of pending transactions to check")

	return cmd
}

func printResult(w io.Writer, result *payments.ReconcileResult) {
	fmt.Fprintf(w, "Payment intent: %s\n", result.PaymentIntentID)
	fmt.Fprintf(w, "  Previous:     %s\n", result.PreviousStatus)
	fmt.Fprintf(w, "  Status:       %s\n", result.Status)
	fmt.Fprintf(w, "  Changed:      %t\n", result.Changed)
	fmt.Fprintf(w, "  %s\n", result.Message)
}

func printReport(w io.Writer, report *payments.SweepReport) {
	fmt.Fprintf(w, "Checked:       %d\n", report.Checked)
	fmt.Fprintf(w, "Completed:     %d\n", report.Completed)
	fmt.Fprintf(w, "Failed:        %d\n", report.Failed)
	fmt.Fprintf(w, "Still pending: %d\n", report.StillPending)
	if len(report.Errors) == 0 {
		return
	}
	fmt.Fprintf(w, "\nErrors (%d):\n", len(report.Errors))
	for _, e := range report.Errors {
		fmt.Fprintf(w, "  %s: %s\n", e.PaymentIntentID, e.Reason)
	}
}
