// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/pizzeria/internal/cart"
	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/menu"
	"github.com/carterperez-dev/pizzeria/internal/notify"
	"github.com/carterperez-dev/pizzeria/internal/payment"
	"github.com/carterperez-dev/pizzeria/internal/store"
)

const (
	tracerName = "pizzeria/order"
	idLength   = 20
	shopName   = "Al Pacino's Pizza"

	// Bound on recording a captured charge once the caller is gone.
	settleTimeout = 30 * time.Second
)

const (
	StepLoadCart    = "load_cart"
	StepVerifyToken = "verify_token"
	StepCharge      = "charge"
	StepCreateOrder = "create_order"
	StepRemoveCart  = "remove_cart"
	StepUpdateUser  = "update_user"
	StepNotify      = "notify"
)

type TokenVerifier interface {
	Verify(ctx context.Context, tokenID, email string) bool
}

type UserRecorder interface {
	CompleteOrder(ctx context.Context, email, cartID, orderID string) error
}

type Result struct {
	Order    *Order
	Warnings []string
}

type Service struct {
	repo     Repository
	carts    cart.Repository
	users    UserRecorder
	verifier TokenVerifier
	charger  payment.Charger
	sender   notify.Sender
	locks    *store.KeyLocker
	now      func() time.Time
	logger   *slog.Logger
}

func NewService(
	repo Repository,
	carts cart.Repository,
	users UserRecorder,
	verifier TokenVerifier,
	charger payment.Charger,
	sender notify.Sender,
	locks *store.KeyLocker,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		carts:    carts,
		users:    users,
		verifier: verifier,
		charger:  charger,
		sender:   sender,
		locks:    locks,
		now:      time.Now,
		logger:   logger.With("component", "checkout"),
	}
}

// Checkout turns a cart into a paid order.
//
// Everything before the charge fails fast and leaves no trace. Once money
// has moved, a failed order write is returned as *InconsistencyError, and
// failures of the remaining cleanup steps are logged and reported as
// warnings on an otherwise successful result. Steps after the charge are
// detached from caller cancellation. The cart lock is held throughout so a
// cart is charged at most once.
func (s *Service) Checkout(ctx context.Context, tokenID, cartID string) (*Result, error) {
	ctx, span := core.StartSpan(ctx, tracerName, "checkout",
		attribute.String("cart_id", cartID),
	)
	defer span.End()

	unlock := s.locks.Lock(store.Carts, cartID)
	defer unlock()

	var c *cart.Cart
	err := s.step(ctx, StepLoadCart, func(ctx context.Context) error {
		var err error
		c, err = s.carts.GetByID(ctx, cartID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	err = s.step(ctx, StepVerifyToken, func(context.Context) error {
		if !s.verifier.Verify(ctx, tokenID, c.UserEmail) {
			return core.ErrUnauthorized
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	if c.Purchased {
		return nil, fmt.Errorf("checkout: cart %s: %w", cartID, ErrAlreadyPurchased)
	}

	orderID, err := core.GenerateID(idLength)
	if err != nil {
		return nil, fmt.Errorf("checkout: generate order id: %w", err)
	}

	amount := menu.Cents(c.Total)

	var charge *payment.Charge
	err = s.step(ctx, StepCharge, func(ctx context.Context) error {
		var err error
		charge, err = s.charger.Charge(ctx, payment.ChargeRequest{
			AmountCents: amount,
			Description: fmt.Sprintf("Charge for order at %s. order ID: %s", shopName, orderID),
		})
		return err
	})
	if err != nil {
		s.logger.WarnContext(ctx, "payment failed",
			"cart_id", cartID,
			"order_id", orderID,
			"error", err,
		)
		return nil, fmt.Errorf("checkout: %w", err)
	}

	// Money has moved. The remaining steps run to completion even if the
	// caller cancels.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), settleTimeout)
	defer cancel()

	order := &Order{
		ID:           orderID,
		UserEmail:    c.UserEmail,
		OrderedAt:    s.now().UTC(),
		OrderTotal:   c.Total,
		ItemsOrdered: c.Items,
		ChargeID:     charge.ID,
	}

	err = s.step(ctx, StepCreateOrder, func(ctx context.Context) error {
		return s.repo.Create(ctx, order)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "checkout inconsistency",
			"order_id", orderID,
			"charge_id", charge.ID,
			"cart_id", cartID,
			"email", c.UserEmail,
			"amount_cents", amount,
			"step", StepCreateOrder,
			"trace_id", core.TraceIDFromContext(ctx),
			"error", err,
		)
		return nil, &InconsistencyError{
			OrderID:     orderID,
			ChargeID:    charge.ID,
			UserEmail:   c.UserEmail,
			AmountCents: amount,
			Err:         err,
		}
	}

	result := &Result{Order: order}

	s.bestEffort(ctx, result, StepRemoveCart, order, func(ctx context.Context) error {
		err := s.carts.Delete(ctx, cartID)
		if err == nil {
			return nil
		}
		// A cart left behind must never be charged again.
		c.Purchased = true
		if markErr := s.carts.Update(ctx, c); markErr != nil {
			return errors.Join(err, markErr)
		}
		return err
	})

	s.bestEffort(ctx, result, StepUpdateUser, order, func(ctx context.Context) error {
		return s.users.CompleteOrder(ctx, c.UserEmail, cartID, orderID)
	})

	s.bestEffort(ctx, result, StepNotify, order, func(ctx context.Context) error {
		return s.sender.Send(ctx, receipt(order))
	})

	s.logger.InfoContext(ctx, "order placed",
		"order_id", orderID,
		"charge_id", charge.ID,
		"amount_cents", amount,
		"warnings", len(result.Warnings),
	)

	return result, nil
}

func (s *Service) Get(ctx context.Context, tokenID, orderID string) (*Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !s.verifier.Verify(ctx, tokenID, order.UserEmail) {
		return nil, fmt.Errorf("get order: %w", core.ErrUnauthorized)
	}

	return order, nil
}

func (s *Service) step(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := core.StartSpan(ctx, tracerName, "checkout."+name)
	defer span.End()

	if err := fn(ctx); err != nil {
		core.SetSpanError(ctx, err)
		return err
	}
	return nil
}

func (s *Service) bestEffort(
	ctx context.Context,
	result *Result,
	name string,
	order *Order,
	fn func(ctx context.Context) error,
) {
	if err := s.step(ctx, name, fn); err != nil {
		s.logger.ErrorContext(ctx, "checkout step failed after payment",
			"order_id", order.ID,
			"charge_id", order.ChargeID,
			"step", name,
			"error", err,
		)
		result.Warnings = append(result.Warnings, name)
	}
}

func receipt(o *Order) notify.Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for ordering at %s!\n\n", shopName)
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	for _, it := range o.ItemsOrdered {
		fmt.Fprintf(&b, "  %-24s $%.2f\n", it.Name, it.Price)
	}
	fmt.Fprintf(&b, "\nTotal charged: $%.2f\n", o.OrderTotal)

	return notify.Message{
		To:      o.UserEmail,
		Subject: "Your Order At " + shopName,
		Text:    b.String(),
	}
}
