// AngelaMos | 2026
// handler.go

package auth

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
	r.Route("/tokens", func(r chi.Router) {
		r.Post("/", h.Login)
		r.Put("/", h.Extend)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireToken)
			r.Get("/", h.Get)
			r.Delete("/", h.Logout)
		})
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.Email = NormalizeEmail(req.Email)

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			core.BadRequest(w, "incorrect password")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToTokenResponse(token, h.service.Now()))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tokenID := middleware.GetToken(r.Context())

	token, err := h.service.Get(r.Context(), tokenID)
	if err != nil {
		writeTokenError(w, err)
		return
	}

	core.OK(w, ToTokenResponse(token, h.service.Now()))
}

func (h *Handler) Extend(w http.ResponseWriter, r *http.Request) {
	var req ExtendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if len(req.Token) != h.service.TokenLength() {
		core.BadRequest(w, "token is malformed")
		return
	}

	token, err := h.service.Extend(r.Context(), req.Token)
	if err != nil {
		writeTokenError(w, err)
		return
	}

	core.OK(w, ToTokenResponse(token, h.service.Now()))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID := middleware.GetToken(r.Context())

	if err := h.service.Logout(r.Context(), tokenID); err != nil {
		writeTokenError(w, err)
		return
	}

	core.NoContent(w)
}

func writeTokenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "token")
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "token is malformed")
	default:
		core.InternalServerError(w, err)
	}
}
