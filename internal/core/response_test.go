// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestJSONError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", NotFoundError("cart"), http.StatusNotFound, "NOT_FOUND"},
		{"validation", ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"expired", TokenExpiredError(), http.StatusForbidden, "TOKEN_EXPIRED"},
		{"upstream", UpstreamError("stripe down"), http.StatusBadGateway, "UPSTREAM_FAILURE"},
		{"wrapped app error", fmt.Errorf("ctx: %w", DuplicateError("email")), http.StatusConflict, "DUPLICATE"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSONError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := NotFoundError("user")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsAppError(fmt.Errorf("wrap: %w", err)))
	assert.Equal(t, "user not found: resource not found", err.Error())
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestFormatValidationError(t *testing.T) {
	type req struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required,min=8"`
		Confirm  string `validate:"eqfield=Password"`
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(req{Email: "nope", Password: "short", Confirm: "other"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "password must be at least 8 characters")
	assert.Contains(t, msg, "confirm must match password")

	assert.Equal(t, "invalid request", FormatValidationError(errors.New("x")))
}
