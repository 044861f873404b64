// AngelaMos | 2026
// repository.go

package order

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/pizzeria/internal/store"
)

type Repository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListIDs(ctx context.Context) ([]string, error)
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) Create(ctx context.Context, order *Order) error {
	if err := r.store.Create(ctx, store.Orders, order.ID, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := r.store.Read(ctx, store.Orders, id, &order); err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &order, nil
}

func (r *repository) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := r.store.List(ctx, store.Orders)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return ids, nil
}
