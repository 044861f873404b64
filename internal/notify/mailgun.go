// AngelaMos | 2026
// mailgun.go

package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/carterperez-dev/pizzeria/internal/config"
	"github.com/carterperez-dev/pizzeria/internal/core"
)

const apiVersionPath = "/v3"

type Message struct {
	To      string
	Subject string
	Text    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// MailgunClient sends plain-text mail through mailgun-go.
type MailgunClient struct {
	mg      *mailgun.MailgunImpl
	from    string
	timeout time.Duration
}

func NewMailgunClient(cfg config.MailConfig) *MailgunClient {
	mg := mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	mg.SetClient(&http.Client{Timeout: cfg.Timeout})
	if cfg.BaseURL != "" {
		mg.SetAPIBase(strings.TrimRight(cfg.BaseURL, "/") + apiVersionPath)
	}

	return &MailgunClient{
		mg:      mg,
		from:    cfg.From,
		timeout: cfg.Timeout,
	}
}

func (c *MailgunClient) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return fmt.Errorf("send mail: empty recipient: %w", core.ErrInvalidInput)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	m := c.mg.NewMessage(c.from, msg.Subject, msg.Text, msg.To)

	if _, _, err := c.mg.Send(ctx, m); err != nil {
		var ure *mailgun.UnexpectedResponseError
		if errors.As(err, &ure) {
			return fmt.Errorf("send mail: status %d: %w", ure.Actual, core.ErrUpstream)
		}
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return fmt.Errorf("send mail: timed out after %s: %w", c.timeout, core.ErrUpstream)
		}
		return fmt.Errorf("send mail: %w: %w", core.ErrUpstream, err)
	}

	return nil
}

var _ Sender = (*MailgunClient)(nil)
