// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/pizzeria/internal/store"
)

type Repository interface {
	Create(ctx context.Context, token *Token) error
	FindByID(ctx context.Context, id string) (*Token, error)
	Update(ctx context.Context, token *Token) error
	Delete(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) Create(ctx context.Context, token *Token) error {
	if err := r.store.Create(ctx, store.Tokens, token.ID, token); err != nil {
		return fmt.Errorf("create token: %w", err)
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Token, error) {
	var token Token
	if err := r.store.Read(ctx, store.Tokens, id, &token); err != nil {
		return nil, fmt.Errorf("find token: %w", err)
	}
	return &token, nil
}

func (r *repository) Update(ctx context.Context, token *Token) error {
	if err := r.store.Update(ctx, store.Tokens, token.ID, token); err != nil {
		return fmt.Errorf("update token: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Remove(ctx, store.Tokens, id); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

func (r *repository) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := r.store.List(ctx, store.Tokens)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	return ids, nil
}
