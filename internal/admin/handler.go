// AngelaMos | 2026
// handler.go

package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/pizzeria/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(guard)

		r.Get("/stats", h.GetStats)
		r.Get("/users", h.ListUsers)
		r.Get("/users/{email}", h.GetUser)
		r.Get("/carts", h.ListCarts)
		r.Get("/carts/{id}", h.GetCart)
		r.Get("/orders", h.ListOrders)
		r.Get("/orders/{id}", h.GetOrder)
	})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, stats)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	keys, err := h.service.ListUsers(r.Context())
	writeList(w, keys, err)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.service.GetUser(r.Context(), chi.URLParam(r, "email"))
	writeRecord(w, u, err, "user")
}

func (h *Handler) ListCarts(w http.ResponseWriter, r *http.Request) {
	keys, err := h.service.ListCarts(r.Context())
	writeList(w, keys, err)
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.GetCart(r.Context(), chi.URLParam(r, "id"))
	writeRecord(w, c, err, "cart")
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	keys, err := h.service.ListOrders(r.Context())
	writeList(w, keys, err)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	writeRecord(w, o, err, "order")
}

func writeList(w http.ResponseWriter, keys []string, err error) {
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, map[string]any{"items": keys, "total": len(keys)})
}

func writeRecord(w http.ResponseWriter, v any, err error, resource string) {
	switch {
	case err == nil:
		core.OK(w, v)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid "+resource+" key")
	default:
		core.InternalServerError(w, err)
	}
}
