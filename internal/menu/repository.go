// AngelaMos | 2026
// repository.go

package menu

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/pizzeria/internal/store"
)

const recordKey = "menu"

type Repository interface {
	Get(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, items []Item) error
}

type repository struct {
	store store.Store
}

func NewRepository(s store.Store) Repository {
	return &repository{store: s}
}

func (r *repository) Get(ctx context.Context) ([]Item, error) {
	var items []Item
	if err := r.store.Read(ctx, store.Menu, recordKey, &items); err != nil {
		return nil, fmt.Errorf("get menu: %w", err)
	}
	return items, nil
}

func (r *repository) Create(ctx context.Context, items []Item) error {
	if err := r.store.Create(ctx, store.Menu, recordKey, items); err != nil {
		return fmt.Errorf("create menu: %w", err)
	}
	return nil
}
