// AngelaMos | 2026
// service.go

package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carterperez-dev/pizzeria/internal/auth"
	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/menu"
	"github.com/carterperez-dev/pizzeria/internal/store"
	"github.com/carterperez-dev/pizzeria/internal/user"
)

const idLength = 20

type TokenVerifier interface {
	Verify(ctx context.Context, tokenID, email string) bool
}

type MenuResolver interface {
	Resolve(ctx context.Context, names []string) (*menu.Selection, error)
}

type UserLinker interface {
	Get(ctx context.Context, email string) (*user.User, error)
	AttachCart(
		ctx context.Context,
		email, cartID string,
		cartExists func(ctx context.Context, id string) bool,
	) error
	DetachCart(ctx context.Context, email, cartID string) error
}

type Service struct {
	repo     Repository
	verifier TokenVerifier
	menu     MenuResolver
	users    UserLinker
	locks    *store.KeyLocker
	now      func() time.Time
	logger   *slog.Logger
}

func NewService(
	repo Repository,
	verifier TokenVerifier,
	resolver MenuResolver,
	users UserLinker,
	locks *store.KeyLocker,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:     repo,
		verifier: verifier,
		menu:     resolver,
		users:    users,
		locks:    locks,
		now:      time.Now,
		logger:   logger.With("component", "cart"),
	}
}

// Create opens a new cart for the user. A user holds at most one open cart.
func (s *Service) Create(
	ctx context.Context,
	tokenID, email string,
	itemNames []string,
) (*Cart, []string, error) {
	email = auth.NormalizeEmail(email)

	if !s.verifier.Verify(ctx, tokenID, email) {
		return nil, nil, fmt.Errorf("create cart: %w", core.ErrUnauthorized)
	}

	u, err := s.users.Get(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	if u.HasCart() && s.exists(ctx, *u.CartID) {
		return nil, nil, fmt.Errorf("create cart: user already has cart %s: %w", *u.CartID, core.ErrDuplicateKey)
	}

	sel, err := s.menu.Resolve(ctx, itemNames)
	if err != nil {
		return nil, nil, err
	}

	id, err := core.GenerateID(idLength)
	if err != nil {
		return nil, nil, fmt.Errorf("generate cart id: %w", err)
	}

	now := s.now().UTC()
	cart := &Cart{
		ID:        id,
		UserEmail: email,
		Items:     sel.Items,
		Total:     sel.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}

	unlock := s.locks.Lock(store.Carts, id)
	defer unlock()

	if err := s.repo.Create(ctx, cart); err != nil {
		return nil, nil, err
	}

	if err := s.users.AttachCart(ctx, email, id, s.exists); err != nil {
		if rmErr := s.repo.Delete(ctx, id); rmErr != nil {
			s.logger.ErrorContext(ctx, "orphaned cart after failed attach",
				"cart_id", id,
				"email", email,
				"error", rmErr,
			)
		}
		return nil, nil, err
	}

	return cart, sel.Dropped, nil
}

func (s *Service) Get(ctx context.Context, tokenID, cartID string) (*Cart, error) {
	cart, err := s.repo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if !s.verifier.Verify(ctx, tokenID, cart.UserEmail) {
		return nil, fmt.Errorf("get cart: %w", core.ErrUnauthorized)
	}

	return cart, nil
}

// Replace swaps the cart's item set and re-derives the total.
func (s *Service) Replace(
	ctx context.Context,
	tokenID, cartID string,
	itemNames []string,
) (*Cart, []string, error) {
	unlock := s.locks.Lock(store.Carts, cartID)
	defer unlock()

	cart, err := s.Get(ctx, tokenID, cartID)
	if err != nil {
		return nil, nil, err
	}

	sel, err := s.menu.Resolve(ctx, itemNames)
	if err != nil {
		return nil, nil, err
	}

	cart.Items = sel.Items
	cart.Total = sel.Total
	cart.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, cart); err != nil {
		return nil, nil, err
	}

	return cart, sel.Dropped, nil
}

// Abandon deletes the cart and clears the owner's reference to it.
func (s *Service) Abandon(ctx context.Context, tokenID, cartID string) error {
	unlock := s.locks.Lock(store.Carts, cartID)
	defer unlock()

	cart, err := s.Get(ctx, tokenID, cartID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, cartID); err != nil {
		return err
	}

	if err := s.users.DetachCart(ctx, cart.UserEmail, cartID); err != nil {
		s.logger.ErrorContext(ctx, "cart removed but user still references it",
			"cart_id", cartID,
			"email", cart.UserEmail,
			"error", err,
		)
	}

	return nil
}

func (s *Service) exists(ctx context.Context, id string) bool {
	_, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return true
	}
	if !errors.Is(err, core.ErrNotFound) {
		s.logger.WarnContext(ctx, "cart lookup failed", "cart_id", id, "error", err)
		return true
	}
	return false
}
