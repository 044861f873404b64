// AngelaMos | 2026
// handler.go

package menu

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/pizzeria/internal/auth"
	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/middleware"
)

type TokenVerifier interface {
	Verify(ctx context.Context, tokenID, email string) bool
}

type Handler struct {
	service  *Service
	verifier TokenVerifier
}

func NewHandler(service *Service, verifier TokenVerifier) *Handler {
	return &Handler{service: service, verifier: verifier}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequireToken).Get("/menu", h.Get)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	email := auth.NormalizeEmail(r.URL.Query().Get("email"))
	if email == "" {
		core.BadRequest(w, "email is required")
		return
	}

	if !h.verifier.Verify(r.Context(), middleware.GetToken(r.Context()), email) {
		core.Unauthorized(w, "")
		return
	}

	items, err := h.service.Get(r.Context())
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "menu")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, items)
}
