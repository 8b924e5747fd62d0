package websockets

import (
	"context"
)

// ConnectionManager defines the interface for tracking WebSocket connections per user.
type ConnectionManager interface {
	AddConnection(ctx context.Context, connectionID, userID string) error
	RemoveConnection(ctx context.Context, connectionID string) error
	GetConnectionsByUserID(ctx context.Context, userID string) ([]string, error)
}

// Publisher defines the interface for publishing messages to one user's WebSocket clients.
type Publisher interface {
	PublishToUser(ctx context.Context, userID string, message Message) error
}
