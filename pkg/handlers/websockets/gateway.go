package websockets

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/streetperformersmap/tips-api/pkg/websockets"
	"go.uber.org/zap"
)

// AuthorizerUserIDKey names the authorizer context entry holding the authenticated user id.
const AuthorizerUserIDKey = "userId"

// Handler handles API Gateway WebSocket route events.
type Handler struct {
	connManager websockets.ConnectionManager
	log         *zap.Logger
}

// NewHandler creates a new Handler.
func NewHandler(connManager websockets.ConnectionManager, log *zap.Logger) *Handler {
	return &Handler{
		connManager: connManager,
		log:         log.With(zap.String("handler", "websockets")),
	}
}

// HandleConnect registers a new client connection for the user the upstream authorizer
// authenticated. Client supplied values such as query parameters are never trusted.
func (h *Handler) HandleConnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	userID := authorizedUserID(request.RequestContext.Authorizer)
	if userID == "" {
		h.log.Warn("Rejecting unauthenticated connection", zap.String("connection_id", connectionID))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusUnauthorized}, nil
	}

	h.log.Info("Client connected", zap.String("connection_id", connectionID), zap.String("user_id", userID))
	if err := h.connManager.AddConnection(ctx, connectionID, userID); err != nil {
		h.log.Error("Failed to save connection", zap.String("connection_id", connectionID), zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDisconnect removes a client connection.
func (h *Handler) HandleDisconnect(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID
	h.log.Info("Client disconnected", zap.String("connection_id", connectionID))

	if err := h.connManager.RemoveConnection(ctx, connectionID); err != nil {
		h.log.Error("Failed to delete connection", zap.String("connection_id", connectionID), zap.Error(err))
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, err
	}

	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// HandleDefault handles messages sent from a client. Clients are not expected to send any.
func (h *Handler) HandleDefault(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	h.log.Debug("Received message", zap.String("connection_id", request.RequestContext.ConnectionID), zap.Int("bytes", len(request.Body)))
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
}

// Route dispatches an event by its route key.
func (h *Handler) Route(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.RequestContext.RouteKey {
	case "$connect":
		return h.HandleConnect(ctx, request)
	case "$disconnect":
		return h.HandleDisconnect(ctx, request)
	default:
		return h.HandleDefault(ctx, request)
	}
}

// authorizedUserID reads the user id from a Lambda authorizer context, falling back to its principal.
func authorizedUserID(authorizer interface{}) string {
	claims, ok := authorizer.(map[string]interface{})
	if !ok {
		return ""
	}
	for _, key := range []string{AuthorizerUserIDKey, "principalId"} {
		if id, ok := claims[key].(string); ok && strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id)
		}
	}
	return ""
}
