// Package payments orchestrates tips: fee calculation, payment intent creation and
// reconciliation of the local transaction record with the payment processor.
package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/notify"
	"github.com/streetperformersmap/tips-api/pkg/processor"
	"github.com/streetperformersmap/tips-api/pkg/storage"
	"go.uber.org/zap"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// TipRequest is the input for creating a tip.
type TipRequest struct {
	Amount           decimal.Decimal `json:"amount"`
	PerformanceID    string          `json:"performanceId" validate:"required,max=128"`
	PerformerID      string          `json:"performerId" validate:"required,max=128"`
	PerformanceTitle string          `json:"performanceTitle" validate:"max=200"`
	PayerID          string          `json:"-" validate:"max=128"`
	IsAnonymous      bool            `json:"isAnonymous"`
	PublicMessage    string          `json:"publicMessage" validate:"max=200"`
}

// TipReceipt is returned to the client so it can confirm the payment. Amounts are in minor units.
type TipReceipt struct {
	TransactionID   string
	PaymentIntentID string
	ClientSecret    string
	Amount          int64
	ProcessingFee   int64
	NetAmount       int64
	Currency        string
}

// Service implements tip creation and both reconciliation paths.
type Service struct {
	store     storage.Storage
	processor processor.Processor
	notifier  notify.Notifier
	fees      FeeSchedule
	currency  string
	log       *zap.Logger
}

// NewService creates a Service. A nil notifier disables notifications.
func NewService(store storage.Storage, proc processor.Processor, notifier notify.Notifier, fees FeeSchedule, currency string, log *zap.Logger) *Service {
	if notifier == nil {
		notifier = notify.NoOp{}
	}
	return &Service{
		store:     store,
		processor: proc,
		notifier:  notifier,
		fees:      fees,
		currency:  currency,
		log:       log.With(zap.String("service", "payments")),
	}
}

// CreateTip validates a tip, creates the processor intent and records a pending transaction.
func (s *Service) CreateTip(ctx context.Context, req TipRequest) (*TipReceipt, error) {
	if err := validateStruct(req); err != nil {
		s.log.Warn("Create tip validation failed", zap.Error(err))
		return nil, err
	}
	breakdown, err := s.fees.Breakdown(req.Amount)
	if err != nil {
		s.log.Warn("Create tip amount rejected", zap.String("amount", req.Amount.String()), zap.Error(err))
		return nil, err
	}

	if req.IsAnonymous {
		req.PayerID = ""
	}
	transactionID := uuid.NewString()

	metadata := map[string]string{
		"transaction_id": transactionID,
		"performance_id": req.PerformanceID,
		"performer_id":   req.PerformerID,
		"processing_fee": FromMinorUnits(breakdown.ProcessingFee).StringFixed(minorUnitPlaces),
		"net_amount":     FromMinorUnits(breakdown.NetAmount).StringFixed(minorUnitPlaces),
	}
	if req.PayerID != "" {
		metadata["payer_id"] = req.PayerID
	}

	intent, err := s.processor.CreatePaymentIntent(ctx, processor.IntentParams{
		Amount:         breakdown.Amount,
		Currency:       s.currency,
		Description:    tipDescription(req),
		IdempotencyKey: transactionID,
		Metadata:       metadata,
	})
	if err != nil {
		s.log.Error("Failed to create payment intent", zap.String("transaction_id", transactionID), zap.Error(err))
		return nil, &PaymentProviderError{Op: "create payment intent", Err: err}
	}

	// The intent already exists at the processor, so the record is written even if the caller goes away.
	tx, err := s.store.CreateTransaction(context.WithoutCancel(ctx), &models.Transaction{
		Id:               transactionID,
		PaymentIntentId:  intent.ID,
		PayerId:          req.PayerID,
		PerformerId:      req.PerformerID,
		PerformanceId:    req.PerformanceID,
		PerformanceTitle: req.PerformanceTitle,
		Currency:         s.currency,
		Amount:           breakdown.Amount,
		ProcessingFee:    breakdown.ProcessingFee,
		NetAmount:        breakdown.NetAmount,
		PublicMessage:    req.PublicMessage,
		IsAnonymous:      req.IsAnonymous,
	})
	if err != nil {
		// The intent exists at the processor without a local record; it can never be reconciled.
		s.log.Error("Failed to record transaction for payment intent",
			zap.String("payment_intent_id", intent.ID),
			zap.String("transaction_id", transactionID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to record transaction for payment intent %s: %w", intent.ID, err)
	}

	s.log.Info("Tip created",
		zap.String("transaction_id", tx.Id),
		zap.String("payment_intent_id", tx.PaymentIntentId),
		zap.Int64("amount", tx.Amount),
		zap.Int64("processing_fee", tx.ProcessingFee))

	return &TipReceipt{
		TransactionID:   tx.Id,
		PaymentIntentID: tx.PaymentIntentId,
		ClientSecret:    intent.ClientSecret,
		Amount:          tx.Amount,
		ProcessingFee:   tx.ProcessingFee,
		NetAmount:       tx.NetAmount,
		Currency:        tx.Currency,
	}, nil
}

// GetTransaction returns the transaction for a payment intent.
func (s *Service) GetTransaction(ctx context.Context, paymentIntentID string) (*models.Transaction, error) {
	tx, err := s.store.GetTransaction(ctx, paymentIntentID)
	if errors.Is(err, storage.ErrTransactionNotFound) {
		return nil, &NotFoundError{PaymentIntentID: paymentIntentID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return tx, nil
}

// ListPerformerTips returns a performer's most recent tips. A zero limit uses the default.
func (s *Service) ListPerformerTips(ctx context.Context, performerID string, limit int) ([]models.Transaction, error) {
	if performerID == "" {
		return nil, newFieldError("performerId", "This field is required")
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, newFieldError("limit", fmt.Sprintf("Must be between 1 and %d", MaxListLimit))
	}

	txs, err := s.store.ListTransactionsByPerformerID(ctx, performerID, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list tips for performer %s: %w", performerID, err)
	}
	return txs, nil
}

func tipDescription(req TipRequest) string {
	if req.PerformanceTitle != "" {
		return "Tip for " + req.PerformanceTitle
	}
	return "Tip for performance " + req.PerformanceID
}
