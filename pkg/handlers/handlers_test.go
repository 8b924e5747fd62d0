package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/streetperformersmap/tips-api/pkg/handlers/respond"
	"github.com/streetperformersmap/tips-api/pkg/middleware"
	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/notify"
	"github.com/streetperformersmap/tips-api/pkg/payments"
	"github.com/streetperformersmap/tips-api/pkg/processor"
	processormocks "github.com/streetperformersmap/tips-api/pkg/processor/mocks"
	"github.com/streetperformersmap/tips-api/pkg/storage"
	storagemocks "github.com/streetperformersmap/tips-api/pkg/storage/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	store     *storagemocks.Storage
	processor *processormocks.Processor
	router    http.Handler
}

func newTestServer(t *testing.T) *testServer {
	store := storagemocks.NewStorage(t)
	proc := processormocks.NewProcessor(t)
	service := payments.NewService(store, proc, notify.NoOp{}, payments.DefaultFeeSchedule(), "usd", zap.NewNop())
	return &testServer{
		store:     store,
		processor: proc,
		router:    NewRouter(NewApiHandler(service, zap.NewNop()), zap.NewNop()),
	}
}

func (s *testServer) do(method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) respond.Response {
	t.Helper()
	var resp respond.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestCreateTip(t *testing.T) {
	body := []byte(`{"amount": 5.00, "performanceId": "performance-1", "performerId": "performer-1", "publicMessage": "bravo"}`)

	t.Run("Success", func(t *testing.T) {
		s := newTestServer(t)
		s.processor.On("CreatePaymentIntent", mock.Anything, mock.MatchedBy(func(p processor.IntentParams) bool {
			return p.Amount == 500 && p.Metadata["payer_id"] == "payer-1"
		})).Return(&processor.Intent{ID: "pi_123", ClientSecret: "pi_123_secret"}, nil).Once()
		s.store.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
			return tx.PayerId == "payer-1" && tx.PublicMessage == "bravo"
		})).Return(func(_ context.Context, tx *models.Transaction) (*models.Transaction, error) {
			return tx, nil
		}).Once()

		rr := s.do(http.MethodPost, "/payments/tip", body, map[string]string{middleware.UserIDHeader: "payer-1"})

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"amount":5.00`)
		assert.Contains(t, rr.Body.String(), `"processingFee":0.45`)
		assert.Contains(t, rr.Body.String(), `"netAmount":4.55`)
		resp := decode(t, rr)
		assert.True(t, resp.Status)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "pi_123", data["paymentIntentId"])
		assert.Equal(t, "pi_123_secret", data["clientSecret"])
		assert.Equal(t, "usd", data["currency"])
	})

	t.Run("Amount Out Of Range", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(http.MethodPost, "/payments/tip", []byte(`{"amount": 0.30, "performanceId": "p", "performerId": "q"}`), nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decode(t, rr)
		assert.Contains(t, resp.Errors, "amount")
		s.processor.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything)
	})

	t.Run("Malformed Body", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(http.MethodPost, "/payments/tip", []byte(`{"amount": "five"`), nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid request body", decode(t, rr).Message)
	})

	t.Run("Provider Unavailable", func(t *testing.T) {
		s := newTestServer(t)
		s.processor.On("CreatePaymentIntent", mock.Anything, mock.Anything).
			Return(nil, processor.ErrProviderUnavailable).Once()

		rr := s.do(http.MethodPost, "/payments/tip", body, nil)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, "Payment provider unavailable, please try again", decode(t, rr).Message)
	})
}

func TestHandleStripeWebhook(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	headers := map[string]string{"Stripe-Signature": "t=1,v1=abc"}
	succeeded := &processor.Event{
		ID:     "evt_1",
		Type:   processor.EventPaymentSucceeded,
		Intent: &processor.Intent{ID: "pi_123", Status: processor.IntentSucceeded, LatestChargeID: "ch_1"},
	}

	t.Run("Applied", func(t *testing.T) {
		s := newTestServer(t)
		s.processor.On("ParseWebhook", payload, "t=1,v1=abc").Return(succeeded, nil).Once()
		s.store.On("FinalizeTransaction", mock.Anything, "pi_123", mock.Anything).
			Return(&models.Transaction{PaymentIntentId: "pi_123", Status: models.COMPLETED}, nil).Once()

		rr := s.do(http.MethodPost, "/payments/webhooks/stripe", payload, headers)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Invalid Signature", func(t *testing.T) {
		s := newTestServer(t)
		s.processor.On("ParseWebhook", payload, "t=1,v1=abc").Return(nil, processor.ErrInvalidSignature).Once()

		rr := s.do(http.MethodPost, "/payments/webhooks/stripe", payload, headers)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		s.store.AssertNotCalled(t, "FinalizeTransaction", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown Intent Is Acknowledged", func(t *testing.T) {
		s := newTestServer(t)
		s.processor.On("ParseWebhook", payload, "t=1,v1=abc").Return(succeeded, nil).Once()
		s.store.On("FinalizeTransaction", mock.Anything, "pi_123", mock.Anything).
			Return(nil, storage.ErrTransactionNotFound).Once()

		rr := s.do(http.MethodPost, "/payments/webhooks/stripe", payload, headers)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Storage Failure Asks For Retry", func(t *testing.T) {
		s := newTestServer(t)
		s.processor.On("ParseWebhook", payload, "t=1,v1=abc").Return(succeeded, nil).Once()
		s.store.On("FinalizeTransaction", mock.Anything, "pi_123", mock.Anything).
			Return(nil, errors.New("throttled")).Once()

		rr := s.do(http.MethodPost, "/payments/webhooks/stripe", payload, headers)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("Payload Too Large", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(http.MethodPost, "/payments/webhooks/stripe", bytes.Repeat([]byte("a"), 64<<10+1), headers)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		s.processor.AssertNotCalled(t, "ParseWebhook", mock.Anything, mock.Anything)
	})
}

func TestGetTransactionByIntentId(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		s := newTestServer(t)
		created := time.Date(2026, 5, 1, 18, 30, 0, 0, time.UTC)
		s.store.On("GetTransaction", mock.Anything, "pi_123").Return(&models.Transaction{
			Id:              "tx-1",
			PaymentIntentId: "pi_123",
			Amount:          500,
			ProcessingFee:   45,
			NetAmount:       455,
			Status:          models.PENDING,
			CreatedAt:       created,
			UpdatedAt:       created,
		}, nil).Once()

		rr := s.do(http.MethodGet, "/payments/transactions/pi_123", nil, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		data := decode(t, rr).Data.(map[string]interface{})
		assert.Equal(t, "pending", data["status"])
		assert.Equal(t, "tx-1", data["id"])
	})

	t.Run("Not Found", func(t *testing.T) {
		s := newTestServer(t)
		s.store.On("GetTransaction", mock.Anything, "pi_missing").Return(nil, storage.ErrTransactionNotFound).Once()

		rr := s.do(http.MethodGet, "/payments/transactions/pi_missing", nil, nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListPerformerTips(t *testing.T) {
	t.Run("With Limit", func(t *testing.T) {
		s := newTestServer(t)
		s.store.On("ListTransactionsByPerformerID", mock.Anything, "performer-1", int32(5)).
			Return([]models.Transaction{{Id: "tx-1"}, {Id: "tx-2"}}, nil).Once()

		rr := s.do(http.MethodGet, "/performers/performer-1/tips?limit=5", nil, nil)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Len(t, decode(t, rr).Data, 2)
	})

	t.Run("Invalid Limit", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(http.MethodGet, "/performers/performer-1/tips?limit=abc", nil, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.True(t, strings.Contains(decode(t, rr).Message, "limit"))
	})

	t.Run("Limit Too Large", func(t *testing.T) {
		s := newTestServer(t)

		rr := s.do(http.MethodGet, "/performers/performer-1/tips?limit=500", nil, nil)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(http.MethodGet, "/healthz", nil, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
}
