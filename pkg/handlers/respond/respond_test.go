package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/streetperformersmap/tips-api/pkg/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", &payments.ValidationError{Fields: map[string]string{"amount": "Must be between 0.50 and 100.00"}}, http.StatusBadRequest, "Validation failed"},
		{"signature", &payments.SignatureVerificationError{Err: errors.New("bad")}, http.StatusBadRequest, "Invalid webhook signature"},
		{"provider", &payments.PaymentProviderError{Op: "create payment intent", Err: errors.New("down")}, http.StatusBadGateway, "Payment provider unavailable, please try again"},
		{"not found", &payments.NotFoundError{PaymentIntentID: "pi_1"}, http.StatusNotFound, "Transaction not found"},
		{"unexpected", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			Error(rr, zap.NewNop(), tt.err)

			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var resp Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.False(t, resp.Status)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestValidationErrorsAreListed(t *testing.T) {
	rr := httptest.NewRecorder()

	Error(rr, zap.NewNop(), &payments.ValidationError{Fields: map[string]string{"performerId": "This field is required"}})

	assert.JSONEq(t, `{"status":false,"message":"Validation failed","errors":{"performerId":"This field is required"}}`, rr.Body.String())
}
