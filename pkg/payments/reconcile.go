package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/processor"
	"github.com/streetperformersmap/tips-api/pkg/storage"
	"go.uber.org/zap"
)

// ReconcileResult describes what a reconciliation attempt did to a transaction.
type ReconcileResult struct {
	PaymentIntentID string
	PreviousStatus  models.TransactionStatus
	Status          models.TransactionStatus
	Changed         bool
	Message         string
}

// SweepFailure records a transaction the sweep could not reconcile.
type SweepFailure struct {
	PaymentIntentID string
	Reason          string
}

// SweepReport summarizes one pass over stale pending transactions.
type SweepReport struct {
	Checked      int
	Completed    int
	Failed       int
	StillPending int
	Errors       []SweepFailure
}

// HandleWebhook verifies and applies a processor event. Unknown intents return a NotFoundError,
// which callers acknowledge since a retry cannot create the missing record.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.processor.ParseWebhook(payload, signature)
	switch {
	case errors.Is(err, processor.ErrInvalidSignature):
		s.log.Warn("Rejected webhook with invalid signature", zap.Error(err))
		return &SignatureVerificationError{Err: err}
	case errors.Is(err, processor.ErrMalformedEvent):
		s.log.Warn("Rejected malformed webhook event", zap.Error(err))
		return newFieldError("payload", err.Error())
	case err != nil:
		return fmt.Errorf("failed to parse webhook: %w", err)
	}

	log := s.log.With(zap.String("event_id", event.ID), zap.String("event_type", event.RawType))

	var outcome models.Outcome
	switch event.Type {
	case processor.EventPaymentSucceeded:
		outcome = models.Outcome{
			Status:   models.COMPLETED,
			ChargeId: event.Intent.LatestChargeID,
			Source:   models.ReconciledByWebhook,
		}
	case processor.EventPaymentFailed:
		outcome = models.Outcome{
			Status:        models.FAILED,
			FailureReason: event.Intent.FailureMessage,
			Source:        models.ReconciledByWebhook,
		}
	default:
		log.Debug("Ignoring webhook event")
		return nil
	}

	log = log.With(zap.String("payment_intent_id", event.Intent.ID))

	tx, applied, err := s.applyOutcome(ctx, event.Intent.ID, outcome)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			log.Warn("Webhook references unknown payment intent")
		} else {
			log.Error("Failed to apply webhook outcome", zap.Error(err))
		}
		return err
	}
	if !applied {
		log.Info("Transaction already finalized, ignoring webhook")
		return nil
	}

	log.Info("Transaction finalized by webhook", zap.String("status", string(tx.Status)))
	return nil
}

// Reconcile checks a transaction against the processor and applies its final status.
// Terminal transactions return immediately without contacting the processor.
func (s *Service) Reconcile(ctx context.Context, paymentIntentID string) (*ReconcileResult, error) {
	return s.reconcile(ctx, paymentIntentID, models.ReconciledByManual)
}

// SweepPending reconciles every transaction still pending after olderThan, continuing past failures.
func (s *Service) SweepPending(ctx context.Context, olderThan time.Duration) (*SweepReport, error) {
	stale, err := s.store.GetStalePendingTransactions(ctx, olderThan)
	if err != nil {
		return nil, fmt.Errorf("failed to get stale pending transactions: %w", err)
	}

	report := &SweepReport{}
	if len(stale) == 0 {
		s.log.Info("No stale pending transactions found")
		return report, nil
	}
	s.log.Info("Sweeping stale pending transactions", zap.Int("count", len(stale)), zap.Duration("older_than", olderThan))

	for _, tx := range stale {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}
		report.Checked++

		result, err := s.reconcile(ctx, tx.PaymentIntentId, models.ReconciledBySweep)
		if err != nil {
			s.log.Error("Failed to reconcile transaction", zap.String("payment_intent_id", tx.PaymentIntentId), zap.Error(err))
			report.Errors = append(report.Errors, SweepFailure{PaymentIntentID: tx.PaymentIntentId, Reason: err.Error()})
			continue
		}

		switch result.Status {
		case models.COMPLETED:
			report.Completed++
		case models.FAILED:
			report.Failed++
		default:
			report.StillPending++
		}
	}

	s.log.Info("Sweep finished",
		zap.Int("checked", report.Checked),
		zap.Int("completed", report.Completed),
		zap.Int("failed", report.Failed),
		zap.Int("still_pending", report.StillPending),
		zap.Int("errors", len(report.Errors)))
	return report, nil
}

func (s *Service) reconcile(ctx context.Context, paymentIntentID string, source models.ReconciliationSource) (*ReconcileResult, error) {
	tx, err := s.GetTransaction(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if tx.Status.IsTerminal() {
		return alreadyFinal(paymentIntentID, tx.Status), nil
	}

	intent, err := s.processor.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, &PaymentProviderError{Op: "retrieve payment intent", Err: err}
	}

	var outcome models.Outcome
	switch intent.Status {
	case processor.IntentSucceeded:
		outcome = models.Outcome{Status: models.COMPLETED, ChargeId: intent.LatestChargeID, Source: source}
	case processor.IntentFailed:
		outcome = models.Outcome{Status: models.FAILED, FailureReason: intent.FailureMessage, Source: source}
	default:
		return &ReconcileResult{
			PaymentIntentID: paymentIntentID,
			PreviousStatus:  tx.Status,
			Status:          tx.Status,
			Message:         fmt.Sprintf("processor reports status: %s", intent.RawStatus),
		}, nil
	}

	updated, applied, err := s.applyOutcome(ctx, paymentIntentID, outcome)
	if err != nil {
		return nil, err
	}
	if !applied {
		// The webhook landed between our read and our write.
		current, err := s.GetTransaction(ctx, paymentIntentID)
		if err != nil {
			return nil, err
		}
		return alreadyFinal(paymentIntentID, current.Status), nil
	}

	s.log.Info("Transaction reconciled",
		zap.String("payment_intent_id", paymentIntentID),
		zap.String("status", string(updated.Status)),
		zap.String("source", string(source)))

	return &ReconcileResult{
		PaymentIntentID: paymentIntentID,
		PreviousStatus:  tx.Status,
		Status:          updated.Status,
		Changed:         true,
		Message:         fmt.Sprintf("status updated to: %s", updated.Status),
	}, nil
}

// applyOutcome performs the pending -> terminal transition. It reports applied=false when the
// transaction was already terminal, and notifies only when this call made the transition.
func (s *Service) applyOutcome(ctx context.Context, paymentIntentID string, outcome models.Outcome) (*models.Transaction, bool, error) {
	tx, err := s.store.FinalizeTransaction(ctx, paymentIntentID, outcome)
	switch {
	case errors.Is(err, storage.ErrTransactionFinalized):
		return nil, false, nil
	case errors.Is(err, storage.ErrTransactionNotFound):
		return nil, false, &NotFoundError{PaymentIntentID: paymentIntentID}
	case err != nil:
		return nil, false, fmt.Errorf("failed to finalize transaction: %w", err)
	}

	if tx.Status == models.COMPLETED {
		s.notifyTip(ctx, tx)
	}
	return tx, true, nil
}

func (s *Service) notifyTip(ctx context.Context, tx *models.Transaction) {
	payload := models.TipPayload{
		TransactionID:    tx.Id,
		Amount:           tx.Amount,
		Currency:         tx.Currency,
		PerformanceTitle: tx.PerformanceTitle,
		Message:          tx.PublicMessage,
	}

	notifications := []models.Notification{
		{Type: models.NotificationTipReceived, Recipient: tx.PerformerId, Payload: payload},
	}
	if !tx.IsAnonymous && tx.PayerId != "" {
		notifications = append(notifications, models.Notification{
			Type:      models.NotificationTipSent,
			Recipient: tx.PayerId,
			Payload:   payload,
		})
	}

	for _, n := range notifications {
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.log.Warn("Failed to deliver tip notification",
				zap.String("transaction_id", tx.Id),
				zap.String("type", string(n.Type)),
				zap.String("recipient", n.Recipient),
				zap.Error(err))
		}
	}
}

func alreadyFinal(paymentIntentID string, status models.TransactionStatus) *ReconcileResult {
	return &ReconcileResult{
		PaymentIntentID: paymentIntentID,
		PreviousStatus:  status,
		Status:          status,
		Message:         fmt.Sprintf("already has status: %s", status),
	}
}
