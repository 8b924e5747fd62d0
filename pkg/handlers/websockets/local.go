package websockets

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/streetperformersmap/tips-api/pkg/handlers/respond"
	"github.com/streetperformersmap/tips-api/pkg/middleware"
	"github.com/streetperformersmap/tips-api/pkg/notify"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all connections for local development.
		return true
	},
}

// UserIDParam is the query string parameter accepted as the user id when query identity is allowed.
const UserIDParam = "userId"

// LocalHandler serves GET /ws for local runs, registering connections with an in-process hub.
type LocalHandler struct {
	hub              *notify.Hub
	allowQueryUserID bool
	log              *zap.Logger
}

// NewLocalHandler creates a new LocalHandler. The user id normally comes from the identity
// middleware; allowQueryUserID also accepts ?userId= and is meant for debug runs only.
func NewLocalHandler(hub *notify.Hub, allowQueryUserID bool, log *zap.Logger) *LocalHandler {
	return &LocalHandler{
		hub:              hub,
		allowQueryUserID: allowQueryUserID,
		log:              log.With(zap.String("handler", "local_websockets")),
	}
}

// ServeHTTP upgrades the request and keeps the connection registered until the client leaves.
func (h *LocalHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok && h.allowQueryUserID {
		userID = r.URL.Query().Get(UserIDParam)
	}
	if userID == "" {
		respond.JSON(w, http.StatusUnauthorized, false, "User id required", nil, nil)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	connectionID := uuid.NewString()
	h.hub.Register(userID, connectionID, conn)
	h.log.Info("Client connected locally", zap.String("connection_id", connectionID), zap.String("user_id", userID))

	defer func() {
		h.hub.Unregister(userID, connectionID)
		h.log.Info("Client disconnected locally", zap.String("connection_id", connectionID))
	}()

	// The read loop only exists to notice when the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("Unexpected close error", zap.Error(err))
			}
			break
		}
	}
}
