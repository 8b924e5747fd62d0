package payments

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports caller input that can be fixed and resubmitted.
type ValidationError struct {
	Fields map[string]string
}

func newFieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// PaymentProviderError reports that the processor could not be reached or rejected the request.
type PaymentProviderError struct {
	Op  string
	Err error
}

func (e *PaymentProviderError) Error() string {
	return fmt.Sprintf("payment provider error during %s: %v", e.Op, e.Err)
}

func (e *PaymentProviderError) Unwrap() error { return e.Err }

// SignatureVerificationError reports a webhook whose signature did not verify.
type SignatureVerificationError struct {
	Err error
}

func (e *SignatureVerificationError) Error() string {
	return fmt.Sprintf("webhook signature verification failed: %v", e.Err)
}

func (e *SignatureVerificationError) Unwrap() error { return e.Err }

// NotFoundError reports a payment intent with no local transaction.
type NotFoundError struct {
	PaymentIntentID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no transaction found for payment intent %s", e.PaymentIntentID)
}
