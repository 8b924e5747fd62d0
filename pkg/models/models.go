package models

import (
	"time"
)

// TransactionStatus defines the possible states of a tip transaction.
type TransactionStatus string

const (
	PENDING   TransactionStatus = "pending"
	COMPLETED TransactionStatus = "completed"
	FAILED    TransactionStatus = "failed"
)

// IsTerminal reports whether the status can no longer change.
func (s TransactionStatus) IsTerminal() bool {
	return s == COMPLETED || s == FAILED
}

// ReconciliationSource records which path moved a transaction to its final state.
type ReconciliationSource string

const (
	ReconciledByWebhook ReconciliationSource = "webhook"
	ReconciledByManual  ReconciliationSource = "manual"
	ReconciledBySweep   ReconciliationSource = "sweep"
)

// Transaction represents the internal domain model for one tip attempt.
// It includes dynamodbav tags for marshalling. Money fields are in minor units.
type Transaction struct {
	Id               string               `dynamodbav:"id"`
	PaymentIntentId  string               `dynamodbav:"payment_intent_id"`
	PayerId          string               `dynamodbav:"payer_id,omitempty"`
	PerformerId      string               `dynamodbav:"performer_id"`
	PerformanceId    string               `dynamodbav:"performance_id"`
	PerformanceTitle string               `dynamodbav:"performance_title,omitempty"`
	Currency         string               `dynamodbav:"currency"`
	Amount           int64                `dynamodbav:"amount"`
	ProcessingFee    int64                `dynamodbav:"processing_fee"`
	NetAmount        int64                `dynamodbav:"net_amount"`
	Status           TransactionStatus    `dynamodbav:"status"`
	PublicMessage    string               `dynamodbav:"public_message,omitempty"`
	IsAnonymous      bool                 `dynamodbav:"is_anonymous"`
	ChargeId         string               `dynamodbav:"charge_id,omitempty"`
	FailureReason    string               `dynamodbav:"failure_reason,omitempty"`
	ReconciledBy     ReconciliationSource `dynamodbav:"reconciled_by,omitempty"`
	CreatedAt        time.Time            `dynamodbav:"created_at"`
	UpdatedAt        time.Time            `dynamodbav:"updated_at"`
	CompletedAt      *time.Time           `dynamodbav:"completed_at,omitempty"`
}

// Outcome is the terminal state a reconciliation path wants to apply.
type Outcome struct {
	Status        TransactionStatus
	ChargeId      string
	FailureReason string
	Source        ReconciliationSource
}

// NotificationType identifies who a notification is addressed to.
type NotificationType string

const (
	NotificationTipReceived NotificationType = "tip_received"
	NotificationTipSent     NotificationType = "tip_sent"
)

// Notification is handed to the delivery channel, which owns its own transport.
type Notification struct {
	Type      NotificationType `json:"type"`
	Recipient string           `json:"recipient"`
	Payload   TipPayload       `json:"payload"`
}

// TipPayload is the body of a tip notification.
type TipPayload struct {
	TransactionID    string `json:"transaction_id"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	PerformanceTitle string `json:"performance_title,omitempty"`
	Message          string `json:"message,omitempty"`
}
