// AngelaMos | 2026
// open.go

package store

import (
	"context"
	"fmt"

	"github.com/carterperez-dev/pizzeria/internal/config"
	"github.com/carterperez-dev/pizzeria/internal/core"
)

// Backend is an opened record store. DB is set only for the postgres driver.
type Backend struct {
	Store Store
	DB    *core.Database
}

// Open builds the store selected by cfg.Store.Driver. The postgres driver
// connects and applies migrations before returning.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		db, err := core.NewDatabase(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}

		if err := RunMigrations(ctx, db.DB.DB); err != nil {
			_ = db.Close() //nolint:errcheck // cleanup on migration failure
			return nil, err
		}

		return &Backend{Store: NewPostgresStore(db.DB), DB: db}, nil

	case config.StoreDriverFile:
		fs, err := NewFileStore(cfg.Store.DataDir)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: fs}, nil

	default:
		return nil, fmt.Errorf("open store: unknown driver %q: %w", cfg.Store.Driver, core.ErrInvalidInput)
	}
}

func (b *Backend) Close() error {
	if b.DB != nil {
		return b.DB.Close()
	}
	return nil
}
