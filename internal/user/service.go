// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/carterperez-dev/pizzeria/internal/auth"
	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/store"
)

type Service struct {
	repo  Repository
	locks *store.KeyLocker
	now   func() time.Time
}

func NewService(repo Repository, locks *store.KeyLocker) *Service {
	return &Service{
		repo:  repo,
		locks: locks,
		now:   time.Now,
	}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, auth.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return &auth.UserInfo{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}, nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	email, passwordHash string,
) error {
	return s.mutate(ctx, email, func(u *User) error {
		u.PasswordHash = passwordHash
		return nil
	})
}

func (s *Service) Register(
	ctx context.Context,
	req CreateUserRequest,
) (*User, error) {
	if !req.TOSAgreement {
		return nil, fmt.Errorf("register: terms not accepted: %w", core.ErrInvalidInput)
	}
	if req.Password != req.ConfirmPassword {
		return nil, fmt.Errorf("register: passwords do not match: %w", core.ErrInvalidInput)
	}

	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        auth.NormalizeEmail(req.Email),
		Street:       strings.TrimSpace(req.Street),
		PasswordHash: passwordHash,
		TOSAgreement: true,
		JoinedOn:     s.now().UTC(),
		OrderIDs:     []string{},
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Get(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, auth.NormalizeEmail(email))
}

func (s *Service) Update(
	ctx context.Context,
	email string,
	req UpdateUserRequest,
) (*User, error) {
	if req.IsEmpty() {
		return nil, fmt.Errorf("update user: nothing to update: %w", core.ErrInvalidInput)
	}

	var passwordHash string
	if req.Password != nil {
		hash, err := core.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		passwordHash = hash
	}

	var updated *User
	err := s.mutate(ctx, email, func(u *User) error {
		if req.FirstName != nil {
			u.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.LastName != nil {
			u.LastName = strings.TrimSpace(*req.LastName)
		}
		if req.Street != nil {
			u.Street = strings.TrimSpace(*req.Street)
		}
		if passwordHash != "" {
			u.PasswordHash = passwordHash
		}
		updated = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the account. Orders placed by the user are kept.
func (s *Service) Delete(ctx context.Context, email string) error {
	email = auth.NormalizeEmail(email)

	unlock := s.locks.Lock(store.Users, email)
	defer unlock()

	if _, err := s.repo.GetByEmail(ctx, email); err != nil {
		return err
	}

	return s.repo.Delete(ctx, email)
}

func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.repo.ListEmails(ctx)
}

// AttachCart points the user at cartID. A reference to a cart that no
// longer exists counts as no cart; the caller decides that via cartExists.
func (s *Service) AttachCart(
	ctx context.Context,
	email, cartID string,
	cartExists func(ctx context.Context, id string) bool,
) error {
	return s.mutate(ctx, email, func(u *User) error {
		if u.HasCart() && *u.CartID != cartID && cartExists(ctx, *u.CartID) {
			return fmt.Errorf("attach cart: user already has cart %s: %w", *u.CartID, core.ErrDuplicateKey)
		}
		id := cartID
		u.CartID = &id
		return nil
	})
}

// DetachCart clears the cart reference only if it still points at cartID.
func (s *Service) DetachCart(ctx context.Context, email, cartID string) error {
	return s.mutate(ctx, email, func(u *User) error {
		if u.HasCart() && *u.CartID == cartID {
			u.CartID = nil
		}
		return nil
	})
}

// CompleteOrder appends orderID and releases cartID in a single update.
func (s *Service) CompleteOrder(ctx context.Context, email, cartID, orderID string) error {
	return s.mutate(ctx, email, func(u *User) error {
		if !u.HasOrder(orderID) {
			u.OrderIDs = append(u.OrderIDs, orderID)
		}
		if u.HasCart() && *u.CartID == cartID {
			u.CartID = nil
		}
		return nil
	})
}

func (s *Service) mutate(
	ctx context.Context,
	email string,
	fn func(u *User) error,
) error {
	email = auth.NormalizeEmail(email)

	unlock := s.locks.Lock(store.Users, email)
	defer unlock()

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := fn(user); err != nil {
		return err
	}

	return s.repo.Update(ctx, user)
}

var _ auth.UserProvider = (*Service)(nil)
