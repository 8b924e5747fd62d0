package mapping

import (
	"encoding/json"

	"github.com/streetperformersmap/tips-api/pkg/api"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/payments"
)

// ToApiTransaction converts a domain Transaction model to an API Transaction model.
func ToApiTransaction(tx *models.Transaction) *api.Transaction {
	return &api.Transaction{
		Id:               tx.Id,
		PaymentIntentId:  tx.PaymentIntentId,
		PayerId:          optional(tx.PayerId),
		PerformerId:      tx.PerformerId,
		PerformanceId:    tx.PerformanceId,
		PerformanceTitle: optional(tx.PerformanceTitle),
		Currency:         tx.Currency,
		Amount:           money(tx.Amount),
		ProcessingFee:    money(tx.ProcessingFee),
		NetAmount:        money(tx.NetAmount),
		Status:           api.TransactionStatus(tx.Status),
		PublicMessage:    optional(tx.PublicMessage),
		IsAnonymous:      tx.IsAnonymous,
		ChargeId:         optional(tx.ChargeId),
		FailureReason:    optional(tx.FailureReason),
		CreatedAt:        tx.CreatedAt,
		UpdatedAt:        tx.UpdatedAt,
		CompletedAt:      tx.CompletedAt,
	}
}

// ToApiTransactions converts a list of domain transactions.
func ToApiTransactions(txs []models.Transaction) []*api.Transaction {
	apiTxs := make([]*api.Transaction, len(txs))
	for i := range txs {
		apiTxs[i] = ToApiTransaction(&txs[i])
	}
	return apiTxs
}

// ToApiTipReceipt converts the service receipt into the API response.
func ToApiTipReceipt(receipt *payments.TipReceipt) *api.TipReceipt {
	return &api.TipReceipt{
		TransactionId:   receipt.TransactionID,
		PaymentIntentId: receipt.PaymentIntentID,
		ClientSecret:    receipt.ClientSecret,
		Amount:          money(receipt.Amount),
		ProcessingFee:   money(receipt.ProcessingFee),
		NetAmount:       money(receipt.NetAmount),
		Currency:        receipt.Currency,
	}
}

// ToTipRequest converts an API NewTip into the service request. The payer comes from
// the authenticated identity, never from the body.
func ToTipRequest(newTip *api.NewTip, payerID string) payments.TipRequest {
	req := payments.TipRequest{
		Amount:        newTip.Amount,
		PerformanceID: newTip.PerformanceId,
		PerformerID:   newTip.PerformerId,
		PayerID:       payerID,
	}
	if newTip.PerformanceTitle != nil {
		req.PerformanceTitle = *newTip.PerformanceTitle
	}
	if newTip.IsAnonymous != nil {
		req.IsAnonymous = *newTip.IsAnonymous
	}
	if newTip.PublicMessage != nil {
		req.PublicMessage = *newTip.PublicMessage
	}
	return req
}

// money renders minor units as a fixed two-decimal JSON number.
func money(units int64) json.Number {
	return json.Number(payments.FromMinorUnits(units).StringFixed(2))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
