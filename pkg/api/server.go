package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Liveness probe
	// (GET /healthz)
	Healthz(w http.ResponseWriter, r *http.Request)
	// Create a tip and its payment intent
	// (POST /payments/tip)
	CreateTip(w http.ResponseWriter, r *http.Request)
	// Get the transaction recorded for a payment intent
	// (GET /payments/transactions/{intentId})
	GetTransactionByIntentId(w http.ResponseWriter, r *http.Request, intentId string)
	// Receive a signed Stripe event
	// (POST /payments/webhooks/stripe)
	HandleStripeWebhook(w http.ResponseWriter, r *http.Request)
	// List a performer's most recent tips
	// (GET /performers/{performerId}/tips)
	ListPerformerTips(w http.ResponseWriter, r *http.Request, performerId string, params ListPerformerTipsParams)
}

// MiddlewareFunc wraps a single operation handler.
type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts requests into typed parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, handler http.Handler) {
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// Healthz operation middleware
func (siw *ServerInterfaceWrapper) Healthz(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.Healthz))
}

// CreateTip operation middleware
func (siw *ServerInterfaceWrapper) CreateTip(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.CreateTip))
}

// GetTransactionByIntentId operation middleware
func (siw *ServerInterfaceWrapper) GetTransactionByIntentId(w http.ResponseWriter, r *http.Request) {
	var intentId string

	err := runtime.BindStyledParameterWithOptions("simple", "intentId", chi.URLParam(r, "intentId"), &intentId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "intentId", Err: err})
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetTransactionByIntentId(w, r, intentId)
	}))
}

// HandleStripeWebhook operation middleware
func (siw *ServerInterfaceWrapper) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, http.HandlerFunc(siw.Handler.HandleStripeWebhook))
}

// ListPerformerTips operation middleware
func (siw *ServerInterfaceWrapper) ListPerformerTips(w http.ResponseWriter, r *http.Request) {
	var performerId string

	err := runtime.BindStyledParameterWithOptions("simple", "performerId", chi.URLParam(r, "performerId"), &performerId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "performerId", Err: err})
		return
	}

	var params ListPerformerTipsParams

	err = runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &params.Limit)
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "limit", Err: err})
		return
	}

	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListPerformerTips(w, r, performerId, params)
	}))
}

// InvalidParamFormatError is passed to the error handler when a parameter cannot be bound.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

// ChiServerOptions configures HandlerWithOptions.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux creates http.Handler with routing matching the API and mounts it on r.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/healthz", wrapper.Healthz)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/payments/tip", wrapper.CreateTip)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/payments/transactions/{intentId}", wrapper.GetTransactionByIntentId)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/payments/webhooks/stripe", wrapper.HandleStripeWebhook)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/performers/{performerId}/tips", wrapper.ListPerformerTips)
	})

	return r
}
