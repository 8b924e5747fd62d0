// Package stripe implements the payment processor port on top of Stripe PaymentIntents.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/streetperformersmap/tips-api/pkg/processor"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
)

// Processor talks to Stripe through the stripe-go client.
type Processor struct {
	api           *client.API
	webhookSecret string
}

// New creates a Processor with its own API client, leaving the stripe package globals untouched.
func New(secretKey, webhookSecret string) *Processor {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Processor{api: api, webhookSecret: webhookSecret}
}

// Make sure we conform to the interface
var _ processor.Processor = (*Processor)(nil)

// CreatePaymentIntent creates a PaymentIntent that the browser confirms with the client secret.
func (p *Processor) CreatePaymentIntent(ctx context.Context, in processor.IntentParams) (*processor.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(in.Amount),
		Currency: stripe.String(in.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if in.Description != "" {
		params.Description = stripe.String(in.Description)
	}
	params.Context = ctx
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, wrapError("create payment intent", err)
	}

	return toIntent(pi), nil
}

// GetPaymentIntent retrieves a PaymentIntent directly from Stripe.
func (p *Processor) GetPaymentIntent(ctx context.Context, intentID string) (*processor.Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, wrapError("retrieve payment intent "+intentID, err)
	}

	return toIntent(pi), nil
}

// ParseWebhook verifies the Stripe-Signature header and decodes PaymentIntent events.
func (p *Processor) ParseWebhook(payload []byte, signature string) (*processor.Event, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, p.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", processor.ErrInvalidSignature, err)
	}

	var eventType processor.EventType
	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		eventType = processor.EventPaymentSucceeded
	case stripe.EventTypePaymentIntentPaymentFailed:
		eventType = processor.EventPaymentFailed
	default:
		return &processor.Event{ID: event.ID, Type: processor.EventIgnored, RawType: string(event.Type)}, nil
	}

	if event.Data == nil {
		return nil, fmt.Errorf("%w: event %s has no data", processor.ErrMalformedEvent, event.ID)
	}
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, fmt.Errorf("%w: event %s: %v", processor.ErrMalformedEvent, event.ID, err)
	}
	if pi.ID == "" {
		return nil, fmt.Errorf("%w: event %s carries no payment intent id", processor.ErrMalformedEvent, event.ID)
	}

	return &processor.Event{
		ID:      event.ID,
		Type:    eventType,
		RawType: string(event.Type),
		Intent:  toIntent(&pi),
	}, nil
}

func toIntent(pi *stripe.PaymentIntent) *processor.Intent {
	intent := &processor.Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		RawStatus:    string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Metadata:     pi.Metadata,
	}
	if pi.LatestCharge != nil {
		intent.LatestChargeID = pi.LatestCharge.ID
	}
	if pi.LastPaymentError != nil {
		intent.FailureMessage = pi.LastPaymentError.Msg
	}

	switch {
	case pi.Status == stripe.PaymentIntentStatusSucceeded:
		intent.Status = processor.IntentSucceeded
	case pi.Status == stripe.PaymentIntentStatusCanceled:
		intent.Status = processor.IntentFailed
		if intent.FailureMessage == "" {
			intent.FailureMessage = "payment intent canceled"
			if pi.CancellationReason != "" {
				intent.FailureMessage += ": " + string(pi.CancellationReason)
			}
		}
	case pi.Status == stripe.PaymentIntentStatusRequiresPaymentMethod && pi.LastPaymentError != nil:
		// Stripe returns a failed attempt to requires_payment_method with the error attached.
		intent.Status = processor.IntentFailed
	default:
		intent.Status = processor.IntentProcessing
	}

	return intent
}

func wrapError(op string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return fmt.Errorf("%s: %w: %s (%s)", op, processor.ErrProviderUnavailable, stripeErr.Msg, stripeErr.Code)
	}
	return fmt.Errorf("%s: %w: %v", op, processor.ErrProviderUnavailable, err)
}
