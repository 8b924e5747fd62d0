// Package respond writes JSON responses in the API's standard envelope.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/streetperformersmap/tips-api/pkg/payments"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// JSON writes a response with a custom status code.
func JSON(w http.ResponseWriter, code int, status bool, message string, data, errs any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errs,
	})
}

// Success returns 200 OK.
func Success(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, true, message, data, nil)
}

// Created returns 201 Created.
func Created(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusCreated, true, message, data, nil)
}

// BadRequest returns 400 Bad Request.
func BadRequest(w http.ResponseWriter, message string, errs any) {
	JSON(w, http.StatusBadRequest, false, message, nil, errs)
}

// NotFound returns 404 Not Found.
func NotFound(w http.ResponseWriter, message string) {
	JSON(w, http.StatusNotFound, false, message, nil, nil)
}

// InternalError returns 500 Internal Server Error.
func InternalError(w http.ResponseWriter, message string) {
	JSON(w, http.StatusInternalServerError, false, message, nil, nil)
}

// BadGateway returns 502 Bad Gateway.
func BadGateway(w http.ResponseWriter, message string) {
	JSON(w, http.StatusBadGateway, false, message, nil, nil)
}

// Error translates a service error into a response. Unexpected errors are logged
// and reported without their details.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	var (
		validationErr *payments.ValidationError
		providerErr   *payments.PaymentProviderError
		signatureErr  *payments.SignatureVerificationError
		notFoundErr   *payments.NotFoundError
	)

	switch {
	case errors.As(err, &validationErr):
		BadRequest(w, "Validation failed", validationErr.Fields)
	case errors.As(err, &signatureErr):
		BadRequest(w, "Invalid webhook signature", nil)
	case errors.As(err, &providerErr):
		BadGateway(w, "Payment provider unavailable, please try again")
	case errors.As(err, &notFoundErr):
		NotFound(w, "Transaction not found")
	default:
		log.Error("Request failed", zap.Error(err))
		InternalError(w, "Internal server error")
	}
}
