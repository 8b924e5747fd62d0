package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/streetperformersmap/tips-api/pkg/api"
	"github.com/streetperformersmap/tips-api/pkg/handlers/respond"
	"github.com/streetperformersmap/tips-api/pkg/handlers/tips"
	"github.com/streetperformersmap/tips-api/pkg/handlers/webhooks"
	"github.com/streetperformersmap/tips-api/pkg/middleware"
	"github.com/streetperformersmap/tips-api/pkg/payments"
	"go.uber.org/zap"
)

// ApiHandler implements the server interface by composing the feature handlers.
type ApiHandler struct {
	*tips.TipsHandler
	*webhooks.WebhooksHandler
}

// NewApiHandler creates a new ApiHandler around the payments service.
func NewApiHandler(service *payments.Service, log *zap.Logger) *ApiHandler {
	return &ApiHandler{
		TipsHandler:     tips.NewTipsHandler(service, log),
		WebhooksHandler: webhooks.NewWebhooksHandler(service, log),
	}
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// Healthz reports that the process is serving requests.
func (h *ApiHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	respond.Success(w, "ok", nil)
}

// NewRouter mounts the API on a chi router with the standard middleware stack.
func NewRouter(handler api.ServerInterface, log *zap.Logger) chi.Router {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewStructuredLogger(log))
	router.Use(middleware.Recover(log))
	router.Use(middleware.Identity)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.NotFound(w, "Route not found")
	})

	api.HandlerWithOptions(handler, api.ChiServerOptions{
		BaseRouter: router,
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			respond.BadRequest(w, err.Error(), nil)
		},
	})

	return router
}
