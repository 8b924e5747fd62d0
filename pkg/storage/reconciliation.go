package storage

import (
	"context"

	"github.com/streetperformersmap/tips-api/pkg/models"
)

// ReconciliationStore defines the privileged interface for moving a transaction to its final state.
// Only the webhook reconciler, the manual fallback and the pending sweep should depend on it.
type ReconciliationStore interface {
	// FinalizeTransaction applies a terminal outcome to a pending transaction in a single
	// conditional write and returns the updated record. It returns ErrTransactionFinalized
	// if the transaction is no longer pending and ErrTransactionNotFound if it does not exist.
	FinalizeTransaction(ctx context.Context, paymentIntentID string, outcome models.Outcome) (*models.Transaction, error)
}
