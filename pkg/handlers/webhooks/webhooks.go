package webhooks

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/streetperformersmap/tips-api/pkg/handlers/respond"
	"github.com/streetperformersmap/tips-api/pkg/payments"
	"go.uber.org/zap"
)

// MaxBodyBytes caps the size of a webhook payload.
const MaxBodyBytes = 64 << 10

// SignatureHeader carries Stripe's signature of the raw payload.
const SignatureHeader = "Stripe-Signature"

// Reconciler applies verified processor events.
type Reconciler interface {
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// WebhooksHandler receives processor callbacks. It is authenticated only by the payload signature.
type WebhooksHandler struct {
	Reconciler Reconciler
	log        *zap.Logger
}

// NewWebhooksHandler creates a new WebhooksHandler.
func NewWebhooksHandler(reconciler Reconciler, log *zap.Logger) *WebhooksHandler {
	return &WebhooksHandler{Reconciler: reconciler, log: log.With(zap.String("handler", "webhooks"))}
}

// HandleStripeWebhook verifies and applies a Stripe event. Events for unknown payment intents
// are acknowledged so that Stripe stops retrying them.
func (h *WebhooksHandler) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.JSON(w, http.StatusRequestEntityTooLarge, false, "Payload too large", nil, nil)
			return
		}
		respond.BadRequest(w, "Failed to read request body", nil)
		return
	}

	err = h.Reconciler.HandleWebhook(r.Context(), payload, r.Header.Get(SignatureHeader))

	var notFound *payments.NotFoundError
	switch {
	case err == nil:
		respond.Success(w, "Webhook received", nil)
	case errors.As(err, &notFound):
		respond.Success(w, "Webhook received, payment intent unknown", nil)
	default:
		respond.Error(w, h.log, err)
	}
}
