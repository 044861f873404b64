// AngelaMos | 2026
// mailgun_test.go

package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/pizzeria/internal/config"
	"github.com/carterperez-dev/pizzeria/internal/core"
)

func newClient(baseURL string) *MailgunClient {
	return NewMailgunClient(config.MailConfig{
		BaseURL: baseURL,
		Domain:  "mg.example.com",
		APIKey:  "key-123",
		From:    "Pizzeria <orders@mg.example.com>",
		Timeout: time.Second,
	})
}

func TestSend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mg.example.com/messages", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "api", user)
		assert.Equal(t, "key-123", pass)

		assert.Equal(t, "al@example.com", r.FormValue("to"))
		assert.Equal(t, "Pizzeria <orders@mg.example.com>", r.FormValue("from"))
		assert.Equal(t, "hello", r.FormValue("subject"))
		assert.Equal(t, "body", r.FormValue("text"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"<m1>","message":"Queued. Thank you."}`))
	}))
	defer srv.Close()

	err := newClient(srv.URL).Send(context.Background(), Message{
		To:      "al@example.com",
		Subject: "hello",
		Text:    "body",
	})
	assert.NoError(t, err)
}

func TestSend_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := newClient(srv.URL).Send(context.Background(), Message{
		To:      "al@example.com",
		Subject: "hello",
		Text:    "body",
	})
	assert.ErrorIs(t, err, core.ErrUpstream)
	assert.Contains(t, err.Error(), "status 401")
}

func TestSend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newClient(url).Send(context.Background(), Message{
		To:      "al@example.com",
		Subject: "hello",
		Text:    "body",
	})
	assert.ErrorIs(t, err, core.ErrUpstream)
}

func TestSend_EmptyRecipient(t *testing.T) {
	err := newClient("http://127.0.0.1:1").Send(context.Background(), Message{})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
