package notify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/streetperformersmap/tips-api/pkg/websockets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingConn struct{}

func (failingConn) WriteJSON(interface{}) error { return errors.New("broken pipe") }
func (failingConn) SetWriteDeadline(time.Time) error { return nil }

func TestHubDeliversOverWebsocket(t *testing.T) {
	hub := NewHub(zap.NewNop())
	registered := make(chan struct{})
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		hub.Register("performer-1", "conn-1", conn)
		close(registered)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	clientConn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer clientConn.Close()

	select {
	case <-registered:
	case <-time.After(5 * time.Second):
		t.Fatal("connection was not registered")
	}

	require.NoError(t, hub.Notify(context.Background(), tipReceived()))

	require.NoError(t, clientConn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg struct {
		Type    websockets.MessageType `json:"type"`
		Payload websockets.TipPayload  `json:"payload"`
	}
	require.NoError(t, clientConn.ReadJSON(&msg))
	assert.Equal(t, websockets.MessageTypeTipReceived, msg.Type)
	assert.Equal(t, "tx-1", msg.Payload.TransactionID)
	assert.Equal(t, int64(500), msg.Payload.Amount)
	assert.Equal(t, "great set!", msg.Payload.Message)
}

func TestHubDropsFailedConnections(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.Register("performer-1", "conn-broken", failingConn{})
	require.Equal(t, 1, hub.ConnectionCount("performer-1"))

	err := hub.Notify(context.Background(), tipReceived())

	assert.NoError(t, err)
	assert.Equal(t, 0, hub.ConnectionCount("performer-1"))
}

func TestHubIgnoresOfflineRecipients(t *testing.T) {
	hub := NewHub(zap.NewNop())

	assert.NoError(t, hub.Notify(context.Background(), tipReceived()))
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub(zap.NewNop())
	hub.Register("payer-1", "conn-1", failingConn{})
	hub.Register("payer-1", "conn-2", failingConn{})

	hub.Unregister("payer-1", "conn-1")
	assert.Equal(t, 1, hub.ConnectionCount("payer-1"))

	hub.Unregister("payer-1", "conn-2")
	hub.Unregister("payer-1", "conn-unknown")
	assert.Equal(t, 0, hub.ConnectionCount("payer-1"))
}
