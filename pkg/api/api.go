// Package api holds the HTTP wire types and the chi routing for the tips API.
package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus defines model for TransactionStatus.
type TransactionStatus string

const (
	Completed TransactionStatus = "completed"
	Failed    TransactionStatus = "failed"
	Pending   TransactionStatus = "pending"
)

// NewTip is the body of POST /payments/tip. Amount is in currency units, e.g. 5.00.
type NewTip struct {
	Amount           decimal.Decimal `json:"amount"`
	IsAnonymous      *bool           `json:"isAnonymous,omitempty"`
	PerformanceId    string          `json:"performanceId"`
	PerformanceTitle *string         `json:"performanceTitle,omitempty"`
	PerformerId      string          `json:"performerId"`
	PublicMessage    *string         `json:"publicMessage,omitempty"`
}

// TipReceipt is returned once the payment intent exists and the tip is recorded.
type TipReceipt struct {
	Amount          json.Number `json:"amount"`
	ClientSecret    string      `json:"clientSecret"`
	Currency        string      `json:"currency"`
	NetAmount       json.Number `json:"netAmount"`
	PaymentIntentId string      `json:"paymentIntentId"`
	ProcessingFee   json.Number `json:"processingFee"`
	TransactionId   string      `json:"transactionId"`
}

// Transaction defines model for Transaction.
type Transaction struct {
	Amount           json.Number       `json:"amount"`
	ChargeId         *string           `json:"chargeId,omitempty"`
	CompletedAt      *time.Time        `json:"completedAt,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	Currency         string            `json:"currency"`
	FailureReason    *string           `json:"failureReason,omitempty"`
	Id               string            `json:"id"`
	IsAnonymous      bool              `json:"isAnonymous"`
	NetAmount        json.Number       `json:"netAmount"`
	PayerId          *string           `json:"payerId,omitempty"`
	PaymentIntentId  string            `json:"paymentIntentId"`
	PerformanceId    string            `json:"performanceId"`
	PerformanceTitle *string           `json:"performanceTitle,omitempty"`
	PerformerId      string            `json:"performerId"`
	ProcessingFee    json.Number       `json:"processingFee"`
	PublicMessage    *string           `json:"publicMessage,omitempty"`
	Status           TransactionStatus `json:"status"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// ListPerformerTipsParams defines parameters for ListPerformerTips.
type ListPerformerTipsParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// CreateTipJSONRequestBody defines body for CreateTip for application/json ContentType.
type CreateTipJSONRequestBody = NewTip
