package tips

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/streetperformersmap/tips-api/pkg/api"
	"github.com/streetperformersmap/tips-api/pkg/handlers/respond"
	"github.com/streetperformersmap/tips-api/pkg/mapping"
	"github.com/streetperformersmap/tips-api/pkg/middleware"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/payments"
	"go.uber.org/zap"
)

// maxTipBodyBytes bounds the size of a tip request body.
const maxTipBodyBytes = 16 << 10

// Service is the part of the payments service the tip endpoints use.
type Service interface {
	CreateTip(ctx context.Context, req payments.TipRequest) (*payments.TipReceipt, error)
	GetTransaction(ctx context.Context, paymentIntentID string) (*models.Transaction, error)
	ListPerformerTips(ctx context.Context, performerID string, limit int) ([]models.Transaction, error)
}

// TipsHandler holds the dependencies for tip-related handlers.
type TipsHandler struct {
	Service Service
	log     *zap.Logger
}

// NewTipsHandler creates a new TipsHandler.
func NewTipsHandler(service Service, log *zap.Logger) *TipsHandler {
	return &TipsHandler{Service: service, log: log.With(zap.String("handler", "tips"))}
}

// CreateTip validates the tip, creates the payment intent and returns the client secret.
func (h *TipsHandler) CreateTip(w http.ResponseWriter, r *http.Request) {
	var newTip api.NewTip
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTipBodyBytes)).Decode(&newTip); err != nil {
		respond.BadRequest(w, "Invalid request body", map[string]string{"body": err.Error()})
		return
	}

	payerID, _ := middleware.UserIDFromContext(r.Context())

	receipt, err := h.Service.CreateTip(r.Context(), mapping.ToTipRequest(&newTip, payerID))
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.Created(w, "Tip created", mapping.ToApiTipReceipt(receipt))
}

// GetTransactionByIntentId returns the transaction recorded for a payment intent.
func (h *TipsHandler) GetTransactionByIntentId(w http.ResponseWriter, r *http.Request, intentId string) {
	tx, err := h.Service.GetTransaction(r.Context(), intentId)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.Success(w, "Transaction retrieved", mapping.ToApiTransaction(tx))
}

// ListPerformerTips returns a performer's most recent tips, newest first.
func (h *TipsHandler) ListPerformerTips(w http.ResponseWriter, r *http.Request, performerId string, params api.ListPerformerTipsParams) {
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	txs, err := h.Service.ListPerformerTips(r.Context(), performerId, limit)
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	respond.Success(w, "Tips retrieved", mapping.ToApiTransactions(txs))
}
