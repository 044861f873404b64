// AngelaMos | 2026
// handler.go

package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.RequireToken)

		r.Post("/", h.Checkout)
		r.Get("/", h.Get)
	})
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	result, err := h.service.Checkout(r.Context(), middleware.GetToken(r.Context()), req.CartID)
	if err != nil {
		writeOrderError(w, err, "cart")
		return
	}

	core.OK(w, OrderResponse{Order: result.Order, Warnings: result.Warnings})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")
	if orderID == "" {
		core.BadRequest(w, "order_id is required")
		return
	}

	order, err := h.service.Get(r.Context(), middleware.GetToken(r.Context()), orderID)
	if err != nil {
		writeOrderError(w, err, "order")
		return
	}

	core.OK(w, OrderResponse{Order: order})
}

func writeOrderError(w http.ResponseWriter, err error, resource string) {
	if ie, ok := AsInconsistency(err); ok {
		appErr := core.NewAppError(
			err,
			"payment was captured but the order could not be recorded",
			http.StatusInternalServerError,
			"PAYMENT_CAPTURED_ORDER_NOT_RECORDED",
		)
		appErr.Details = map[string]any{
			"order_id":  ie.OrderID,
			"charge_id": ie.ChargeID,
		}
		core.JSONError(w, appErr)
		return
	}

	switch {
	case errors.Is(err, ErrAlreadyPurchased):
		core.JSONError(w, core.NewAppError(
			err,
			"this cart has already been paid for",
			http.StatusConflict,
			"CART_ALREADY_PURCHASED",
		))
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.Is(err, core.ErrUpstream):
		core.JSONError(w, core.NewAppError(
			err,
			"payment failed, you have not been charged",
			http.StatusBadGateway,
			"PAYMENT_FAILED",
		))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "cart cannot be checked out")
	default:
		core.InternalServerError(w, err)
	}
}
