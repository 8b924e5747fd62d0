package storage

import "errors"

// ErrTransactionNotFound is returned when no transaction exists for a payment intent.
var ErrTransactionNotFound = errors.New("transaction not found")

// ErrTransactionFinalized is returned when a transaction has already reached a terminal status.
var ErrTransactionFinalized = errors.New("transaction already finalized")

// ErrDuplicateTransaction is returned when a transaction for the payment intent already exists.
var ErrDuplicateTransaction = errors.New("transaction already exists for payment intent")
