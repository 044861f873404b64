// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/pizzeria/internal/store"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, email string) error
	ListEmails(ctx context.Context) ([]string, error)
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	if err := r.store.Create(ctx, store.Users, user.Email, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.store.Read(ctx, store.Users, email, &user); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *repository) Update(ctx context.Context, user *User) error {
	if err := r.store.Update(ctx, store.Users, user.Email, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, email string) error {
	if err := r.store.Remove(ctx, store.Users, email); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *repository) ListEmails(ctx context.Context) ([]string, error) {
	emails, err := r.store.List(ctx, store.Users)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return emails, nil
}
