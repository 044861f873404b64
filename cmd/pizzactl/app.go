// AngelaMos | 2026
// app.go

package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/carterperez-dev/pizzeria/internal/admin"
	"github.com/carterperez-dev/pizzeria/internal/config"
	"github.com/carterperez-dev/pizzeria/internal/console"
	"github.com/carterperez-dev/pizzeria/internal/store"
)

// app holds what every subcommand needs. cfg may be preset; otherwise it is
// loaded from configPath on first use.
type app struct {
	configPath string
	out        io.Writer
	logger     *slog.Logger

	cfg     *config.Config
	backend *store.Backend
}

func newApp(out io.Writer) *app {
	return &app{
		out:    out,
		logger: slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
}

func (a *app) open(ctx context.Context) error {
	if a.backend != nil {
		return nil
	}

	if a.cfg == nil {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}

	backend, err := store.Open(ctx, a.cfg)
	if err != nil {
		return err
	}
	a.backend = backend
	return nil
}

func (a *app) close() error {
	if a.backend == nil {
		return nil
	}
	err := a.backend.Close()
	a.backend = nil
	return err
}

func (a *app) console() *console.Console {
	cfg := admin.Config{Store: a.backend.Store}
	if a.backend.DB != nil {
		cfg.DBStats = a.backend.DB.Stats
	}
	return console.New(admin.NewService(cfg), a.out)
}
