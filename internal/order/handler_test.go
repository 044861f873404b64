// AngelaMos | 2026
// handler_test.go

package order

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pizzeria/internal/cart"
	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/middleware"
	"github.com/carterperez-dev/pizzeria/internal/store"
)

func newRouter(f *fixture) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.TokenExtractor("Authorization", len(testToken)))
	NewHandler(f.svc).RegisterRoutes(r)
	return r
}

func call(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", testToken)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool `json:"success"`
	Data    struct {
		ID         string   `json:"id"`
		OrderTotal float64  `json:"order_total"`
		Warnings   []string `json:"warnings"`
	} `json:"data"`
	Error *core.ErrorDetail `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHandler_CheckoutAndGet(t *testing.T) {
	f := newFixture(t)
	h := newRouter(f)
	c := f.openCart(t)

	rec := call(h, http.MethodPost, "/orders", `{"cart_id":"`+c.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, 14.0, env.Data.OrderTotal)
	assert.Empty(t, env.Data.Warnings)

	rec = call(h, http.MethodGet, "/orders?order_id="+env.Data.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(h, http.MethodPost, "/orders", `{"cart_id":"`+c.ID+`"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_PaymentFailed(t *testing.T) {
	f := newFixture(t)
	h := newRouter(f)
	c := f.openCart(t)
	f.charger.err = fmt.Errorf("charge: %w", core.ErrUpstream)

	rec := call(h, http.MethodPost, "/orders", `{"cart_id":"`+c.ID+`"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "PAYMENT_FAILED", decode(t, rec).Error.Code)
}

func TestHandler_Inconsistency(t *testing.T) {
	f := newFixture(t)
	h := newRouter(f)
	c := f.openCart(t)
	f.withFaults(store.Orders)

	rec := call(h, http.MethodPost, "/orders", `{"cart_id":"`+c.ID+`"}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	env := decode(t, rec)
	assert.Equal(t, "PAYMENT_CAPTURED_ORDER_NOT_RECORDED", env.Error.Code)
	assert.Equal(t, "ch_1", env.Error.Details["charge_id"])
	assert.NotEmpty(t, env.Error.Details["order_id"])
}

func TestHandler_LeftoverCartConflict(t *testing.T) {
	f := newFixture(t)
	h := newRouter(f)
	c := f.openCart(t)
	f.svc.carts = cart.NewRepository(&faultyStore{Store: f.store, collection: store.Carts})

	rec := call(h, http.MethodPost, "/orders", `{"cart_id":"`+c.ID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{StepRemoveCart}, decode(t, rec).Data.Warnings)

	rec = call(h, http.MethodPost, "/orders", `{"cart_id":"`+c.ID+`"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CART_ALREADY_PURCHASED", decode(t, rec).Error.Code)
}

func TestHandler_Validation(t *testing.T) {
	f := newFixture(t)
	h := newRouter(f)

	rec := call(h, http.MethodPost, "/orders", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(h, http.MethodPost, "/orders", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = call(h, http.MethodGet, "/orders", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/orders?order_id=x", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
