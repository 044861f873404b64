// AngelaMos | 2026
// repository.go

package cart

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/pizzeria/internal/store"
)

type Repository interface {
	Create(ctx context.Context, cart *Cart) error
	GetByID(ctx context.Context, id string) (*Cart, error)
	Update(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) Create(ctx context.Context, cart *Cart) error {
	if err := r.store.Create(ctx, store.Carts, cart.ID, cart); err != nil {
		return fmt.Errorf("create cart: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Cart, error) {
	var cart Cart
	if err := r.store.Read(ctx, store.Carts, id, &cart); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return &cart, nil
}

func (r *repository) Update(ctx context.Context, cart *Cart) error {
	if err := r.store.Update(ctx, store.Carts, cart.ID, cart); err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Remove(ctx, store.Carts, id); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}

func (r *repository) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := r.store.List(ctx, store.Carts)
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}
	return ids, nil
}
