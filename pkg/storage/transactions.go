package storage

import (
	"context"
	"time"

	"github.com/streetperformersmap/tips-api/pkg/models"
)

// TransactionReader defines the interface for reading transaction data.
type TransactionReader interface {
	// GetTransaction retrieves a transaction by its payment intent ID.
	GetTransaction(ctx context.Context, paymentIntentID string) (*models.Transaction, error)

	// GetStalePendingTransactions retrieves transactions that are still pending after maxAge.
	GetStalePendingTransactions(ctx context.Context, maxAge time.Duration) ([]models.Transaction, error)

	// ListTransactionsByPerformerID retrieves the most recent transactions for a performer.
	ListTransactionsByPerformerID(ctx context.Context, performerID string, limit int32) ([]models.Transaction, error)
}

// TransactionManager defines the interface for recording new tip attempts.
type TransactionManager interface {
	// CreateTransaction stores a new pending transaction and returns it.
	CreateTransaction(ctx context.Context, newTx *models.Transaction) (*models.Transaction, error)
}

// TransactionStore combines the reader and manager interfaces.
type TransactionStore interface {
	TransactionReader
	TransactionManager
}
