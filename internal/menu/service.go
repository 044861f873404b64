// AngelaMos | 2026
// service.go

package menu

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carterperez-dev/pizzeria/internal/core"
)

// Selection is the result of matching requested names against the menu.
type Selection struct {
	Items   []Item
	Total   float64
	Dropped []string
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "menu"),
	}
}

func (s *Service) Get(ctx context.Context) ([]Item, error) {
	return s.repo.Get(ctx)
}

// Seed stores the menu once; an existing menu is never overwritten.
func (s *Service) Seed(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("seed menu: empty menu: %w", core.ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		name := strings.ToLower(strings.TrimSpace(it.Name))
		if name == "" || it.Price <= 0 {
			return fmt.Errorf("seed menu: bad item %q: %w", it.Name, core.ErrInvalidInput)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("seed menu: duplicate item %q: %w", it.Name, core.ErrInvalidInput)
		}
		seen[name] = struct{}{}
	}

	return s.repo.Create(ctx, items)
}

// Resolve maps requested names onto menu items. Matching is trimmed and
// case-insensitive; request order and repeats are kept. Names not on the
// menu are dropped and reported.
func (s *Service) Resolve(ctx context.Context, names []string) (*Selection, error) {
	items, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Item, len(items))
	for _, it := range items {
		byName[strings.ToLower(strings.TrimSpace(it.Name))] = it
	}

	sel := &Selection{Items: make([]Item, 0, len(names))}
	for _, raw := range names {
		it, ok := byName[strings.ToLower(strings.TrimSpace(raw))]
		if !ok {
			sel.Dropped = append(sel.Dropped, raw)
			continue
		}
		sel.Items = append(sel.Items, it)
	}
	sel.Total = Total(sel.Items)

	if len(sel.Dropped) > 0 {
		s.logger.WarnContext(ctx, "dropped items not on the menu",
			"dropped", sel.Dropped,
			"kept", len(sel.Items),
		)
	}

	if len(sel.Items) == 0 {
		return sel, fmt.Errorf("resolve items: no menu items selected: %w", core.ErrInvalidInput)
	}

	return sel, nil
}
