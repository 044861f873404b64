// AngelaMos | 2026
// handler.go

package cart

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/pizzeria/internal/auth"
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
	r.Route("/cart", func(r chi.Router) {
		r.Use(middleware.RequireToken)

		r.Post("/", h.Create)
		r.Get("/", h.Get)
		r.Put("/", h.Replace)
		r.Delete("/", h.Abandon)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.Email = auth.NormalizeEmail(req.Email)

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	cart, dropped, err := h.service.Create(
		r.Context(),
		middleware.GetToken(r.Context()),
		req.Email,
		req.Items,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		writeCartError(w, err)
		return
	}

	core.Created(w, CartResponse{Cart: cart, Dropped: dropped})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cartID := r.URL.Query().Get("cart_id")
	if cartID == "" {
		core.BadRequest(w, "cart_id is required")
		return
	}

	cart, err := h.service.Get(r.Context(), middleware.GetToken(r.Context()), cartID)
	if err != nil {
		writeCartError(w, err)
		return
	}

	core.OK(w, CartResponse{Cart: cart})
}

func (h *Handler) Replace(w http.ResponseWriter, r *http.Request) {
	var req ReplaceCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	cart, dropped, err := h.service.Replace(
		r.Context(),
		middleware.GetToken(r.Context()),
		req.CartID,
		req.Items,
	)
	if err != nil {
		writeCartError(w, err)
		return
	}

	core.OK(w, CartResponse{Cart: cart, Dropped: dropped})
}

func (h *Handler) Abandon(w http.ResponseWriter, r *http.Request) {
	cartID := r.URL.Query().Get("cart_id")
	if cartID == "" {
		core.BadRequest(w, "cart_id is required")
		return
	}

	if err := h.service.Abandon(r.Context(), middleware.GetToken(r.Context()), cartID); err != nil {
		writeCartError(w, err)
		return
	}

	core.NoContent(w)
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		core.Unauthorized(w, "")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "cart")
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.NewAppError(
			err,
			"user already has an open cart",
			http.StatusConflict,
			"CART_EXISTS",
		))
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "please choose at least one item from the menu")
	default:
		core.InternalServerError(w, err)
	}
}
