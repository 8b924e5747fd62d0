// Package processor defines the boundary to the external payment processor.
//
// Everything the processor sends us is decoded into the types below before it
// reaches the payments service, so no caller needs to reach into raw payloads.
package processor

import (
	"context"
	"errors"
)

// ErrInvalidSignature is returned when a webhook payload fails signature verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// ErrMalformedEvent is returned when a verified webhook payload cannot be decoded.
var ErrMalformedEvent = errors.New("malformed webhook event")

// ErrProviderUnavailable is returned when the processor cannot be reached or rejects a request.
var ErrProviderUnavailable = errors.New("payment provider unavailable")

// IntentStatus is the processor's view of a payment intent, normalized to what reconciliation needs.
type IntentStatus string

const (
	IntentSucceeded  IntentStatus = "succeeded"
	IntentFailed     IntentStatus = "failed"
	IntentProcessing IntentStatus = "processing"
)

// IntentParams describes a payment intent to create.
type IntentParams struct {
	Amount         int64
	Currency       string
	Description    string
	IdempotencyKey string
	Metadata       map[string]string
}

// Intent is a payment intent as reported by the processor.
type Intent struct {
	ID             string
	ClientSecret   string
	Status         IntentStatus
	RawStatus      string
	Amount         int64
	Currency       string
	LatestChargeID string
	FailureMessage string
	Metadata       map[string]string
}

// EventType identifies a webhook event after decoding.
type EventType string

const (
	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
	EventIgnored          EventType = "ignored"
)

// Event is a verified and decoded webhook event. Intent is nil for ignored events.
type Event struct {
	ID      string
	Type    EventType
	RawType string
	Intent  *Intent
}

// Processor is the payment processor port.
type Processor interface {
	// CreatePaymentIntent asks the processor to create a payment intent for the gross amount.
	CreatePaymentIntent(ctx context.Context, params IntentParams) (*Intent, error)

	// GetPaymentIntent retrieves the processor's current view of a payment intent.
	GetPaymentIntent(ctx context.Context, intentID string) (*Intent, error)

	// ParseWebhook verifies the signature header and decodes the event payload.
	ParseWebhook(payload []byte, signature string) (*Event, error)
}
