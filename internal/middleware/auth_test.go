// AngelaMos | 2026
// auth_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const token = "abcdefghij0123456789"

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"raw", token, token},
		{"bearer", "Bearer " + token, token},
		{"bearer lower case", "bearer " + token, token},
		{"padded", "  " + token + " ", token},
		{"empty", "", ""},
		{"too short", "abc", ""},
		{"too long", token + "x", ""},
		{"other scheme", "Basic " + token, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, ExtractToken(r, "Authorization", len(token)))
		})
	}
}

func TestTokenExtractorAndRequireToken(t *testing.T) {
	var seen string
	h := TokenExtractor("Authorization", len(token))(RequireToken(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = GetToken(r.Context())
			w.WriteHeader(http.StatusOK)
		}),
	))

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, token, seen)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_INVALID")
}

func TestRequireAdminKey(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		configured string
		given      string
		want       int
	}{
		{"match", "secret-key-0123456789", "secret-key-0123456789", http.StatusOK},
		{"mismatch", "secret-key-0123456789", "nope", http.StatusForbidden},
		{"missing", "secret-key-0123456789", "", http.StatusForbidden},
		{"not configured", "", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.given != "" {
				r.Header.Set("X-Admin-Key", tt.given)
			}
			rec := httptest.NewRecorder()
			RequireAdminKey("X-Admin-Key", tt.configured)(ok).ServeHTTP(rec, r)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
