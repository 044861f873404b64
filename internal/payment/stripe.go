// AngelaMos | 2026
// stripe.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/carterperez-dev/pizzeria/internal/config"
	"github.com/carterperez-dev/pizzeria/internal/core"
)

type ChargeRequest struct {
	AmountCents int64
	Description string
}

type Charge struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

type Charger interface {
	Charge(ctx context.Context, req ChargeRequest) (*Charge, error)
}

// StripeClient creates charges through stripe-go with network retries
// disabled.
type StripeClient struct {
	api      *client.API
	currency string
	source   string
	timeout  time.Duration
}

func NewStripeClient(cfg config.PaymentConfig) *StripeClient {
	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(strings.TrimRight(cfg.BaseURL, "/"))
	}

	api := client.New(cfg.SecretKey, &stripe.Backends{
		API: stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
	})

	return &StripeClient{
		api:      api,
		currency: cfg.Currency,
		source:   cfg.Source,
		timeout:  cfg.Timeout,
	}
}

// Charge submits one charge. Declines, transport errors and timeouts are
// reported as core.ErrUpstream.
func (c *StripeClient) Charge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	if req.AmountCents <= 0 {
		return nil, fmt.Errorf("charge: non-positive amount %d: %w", req.AmountCents, core.ErrInvalidInput)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(req.AmountCents),
		Currency:    stripe.String(c.currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	if err := params.SetSource(c.source); err != nil {
		return nil, fmt.Errorf("charge: source: %w", err)
	}

	ch, err := c.api.Charges.New(params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) {
			return nil, fmt.Errorf("charge: status %d: %s: %w", se.HTTPStatusCode, se.Msg, core.ErrUpstream)
		}
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, fmt.Errorf("charge: timed out after %s: %w", c.timeout, core.ErrUpstream)
		}
		return nil, fmt.Errorf("charge: %w: %w", core.ErrUpstream, err)
	}

	return &Charge{
		ID:       ch.ID,
		Amount:   ch.Amount,
		Currency: string(ch.Currency),
		Status:   string(ch.Status),
	}, nil
}

var _ Charger = (*StripeClient)(nil)
