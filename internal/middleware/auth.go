// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/carterperez-dev/pizzeria/internal/core"
)

const TokenKey contextKey = "token_id"

// TokenExtractor reads the token id from the configured header and stores it
// in the request context. A missing or malformed token leaves the context
// empty; handlers decide whether that is fatal.
func TokenExtractor(header string, length int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := ExtractToken(r, header, length); token != "" {
				r = r.WithContext(context.WithValue(r.Context(), TokenKey, token))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetToken(r.Context()) == "" {
			core.JSONError(w, core.TokenInvalidError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ExtractToken accepts either the raw token id or "Bearer <id>".
func ExtractToken(r *http.Request, header string, length int) string {
	value := strings.TrimSpace(r.Header.Get(header))
	if value == "" {
		return ""
	}

	if parts := strings.SplitN(value, " ", 2); len(parts) == 2 {
		if !strings.EqualFold(parts[0], "bearer") {
			return ""
		}
		value = strings.TrimSpace(parts[1])
	}

	if len(value) != length {
		return ""
	}

	return value
}

func GetToken(ctx context.Context) string {
	if token, ok := ctx.Value(TokenKey).(string); ok {
		return token
	}
	return ""
}

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

// RequireAdminKey guards operator routes with a static shared key.
func RequireAdminKey(header, key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			given := r.Header.Get(header)
			if key == "" || subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
				core.Forbidden(w, "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
