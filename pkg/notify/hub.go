package notify

import (
	"context"
	"sync"
	"time"

	"github.com/streetperformersmap/tips-api/pkg/models"
	"github.com/streetperformersmap/tips-api/pkg/websockets"
	"go.uber.org/zap"
)

const writeWait = 10 * time.Second

// Conn is the write side of a client connection, satisfied by *websocket.Conn.
type Conn interface {
	WriteJSON(v interface{}) error
	SetWriteDeadline(t time.Time) error
}

type client struct {
	mu   sync.Mutex
	conn Conn
}

func (c *client) write(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

// Hub delivers notifications to connections held by this process. It is meant for
// local runs where there is no API Gateway and no queue. Notifications for users
// without an open connection are dropped.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[string]*client
	log     *zap.Logger
}

// NewHub creates an empty Hub.
func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[string]*client),
		log:     log.With(zap.String("component", "notification_hub")),
	}
}

// Make sure we conform to the interface
var _ Notifier = (*Hub)(nil)

// Register adds a connection for a user.
func (h *Hub) Register(userID, connectionID string, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[string]*client)
	}
	h.clients[userID][connectionID] = &client{conn: conn}
}

// Unregister removes a connection. Unknown connections are ignored.
func (h *Hub) Unregister(userID, connectionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[userID], connectionID)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// ConnectionCount returns the number of open connections for a user.
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// Notify writes the notification to every connection of its recipient.
// Connections that fail to accept the write are dropped.
func (h *Hub) Notify(_ context.Context, n models.Notification) error {
	h.mu.RLock()
	targets := make(map[string]*client, len(h.clients[n.Recipient]))
	for id, c := range h.clients[n.Recipient] {
		targets[id] = c
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		h.log.Debug("No local connections for recipient", zap.String("recipient", n.Recipient))
		return nil
	}

	msg := websockets.FromNotification(n)
	for id, c := range targets {
		if err := c.write(msg); err != nil {
			h.log.Warn("Dropping local connection after failed write",
				zap.String("connection_id", id),
				zap.String("recipient", n.Recipient),
				zap.Error(err))
			h.Unregister(n.Recipient, id)
		}
	}
	return nil
}
