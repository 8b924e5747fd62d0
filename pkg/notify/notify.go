// Package notify delivers tip notifications to performers and payers.
package notify

import (
	"context"

	"github.com/streetperformersmap/tips-api/pkg/models"
)

// Notifier hands a notification to a delivery channel.
type Notifier interface {
	Notify(ctx context.Context, n models.Notification) error
}

// Mode selects the delivery channel.
type Mode string

const (
	ModeSQS   Mode = "sqs"
	ModeLocal Mode = "local"
	ModeNone  Mode = "none"
)

// NoOp drops every notification.
type NoOp struct{}

func (NoOp) Notify(context.Context, models.Notification) error { return nil }
