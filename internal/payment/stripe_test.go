// AngelaMos | 2026
// stripe_test.go

package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pizzeria/internal/config"
	"github.com/carterperez-dev/pizzeria/internal/core"
)

func newClient(baseURL string, timeout time.Duration) *StripeClient {
	return NewStripeClient(config.PaymentConfig{
		BaseURL:   baseURL,
		SecretKey: "sk_test_123",
		Currency:  "usd",
		Source:    "tok_visa",
		Timeout:   timeout,
	})
}

func TestCharge_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/charges", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "1400", r.FormValue("amount"))
		assert.Equal(t, "usd", r.FormValue("currency"))
		assert.Equal(t, "tok_visa", r.FormValue("source"))
		assert.Equal(t, "order abc", r.FormValue("description"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ch_1","amount":1400,"currency":"usd","status":"succeeded"}`))
	}))
	defer srv.Close()

	charge, err := newClient(srv.URL, time.Second).Charge(context.Background(), ChargeRequest{
		AmountCents: 1400,
		Description: "order abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "ch_1", charge.ID)
	assert.Equal(t, int64(1400), charge.Amount)
}

func TestCharge_Declined(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, time.Second).Charge(context.Background(), ChargeRequest{AmountCents: 100})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUpstream)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestCharge_NotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"type":"api_error","message":"try later"}}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL, time.Second).Charge(context.Background(), ChargeRequest{AmountCents: 100})
	assert.ErrorIs(t, err, core.ErrUpstream)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCharge_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := newClient(srv.URL, 50*time.Millisecond).Charge(context.Background(), ChargeRequest{AmountCents: 100})
	assert.ErrorIs(t, err, core.ErrUpstream)
}

func TestCharge_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newClient(url, time.Second).Charge(context.Background(), ChargeRequest{AmountCents: 100})
	assert.ErrorIs(t, err, core.ErrUpstream)
}

func TestCharge_RejectsZeroAmount(t *testing.T) {
	_, err := newClient("http://127.0.0.1:1", time.Second).Charge(context.Background(), ChargeRequest{})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
