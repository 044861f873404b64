// AngelaMos | 2026
// sweeper.go

// Package sweeper periodically deletes expired tokens from the record store.
package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/pizzeria/internal/auth"
	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/store"
)

const tracerName = "pizzeria/sweeper"

type Result struct {
	Scanned int `json:"scanned"`
	Removed int `json:"removed"`
	Failed  int `json:"failed"`
}

type Sweeper struct {
	tokens   auth.Repository
	locks    *store.KeyLocker
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

func New(
	tokens auth.Repository,
	locks *store.KeyLocker,
	interval time.Duration,
	logger *slog.Logger,
) *Sweeper {
	return &Sweeper{
		tokens:   tokens,
		locks:    locks,
		interval: interval,
		now:      time.Now,
		logger:   logger.With("component", "sweeper"),
	}
}

// Run sweeps once right away and then on every tick until ctx is done.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("token sweeper started", "interval", s.interval)

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			s.logger.Info("token sweeper stopped")
			return
		}
	}
}

// Sweep removes every token whose expiry has passed. Individual failures are
// logged and counted; they never stop the pass.
func (s *Sweeper) Sweep(ctx context.Context) Result {
	ctx, span := core.StartSpan(ctx, tracerName, "sweep")
	defer span.End()

	var res Result

	ids, err := s.tokens.ListIDs(ctx)
	if err != nil {
		core.SetSpanError(ctx, err)
		s.logger.ErrorContext(ctx, "sweep failed",
			"action", "list",
			"error", err,
		)
		res.Failed++
		return res
	}

	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		res.Scanned++

		removed, err := s.sweepOne(ctx, id)
		switch {
		case err != nil:
			res.Failed++
		case removed:
			res.Removed++
		}
	}

	span.SetAttributes(
		attribute.Int("sweep.scanned", res.Scanned),
		attribute.Int("sweep.removed", res.Removed),
		attribute.Int("sweep.failed", res.Failed),
	)

	if res.Removed > 0 || res.Failed > 0 {
		s.logger.InfoContext(ctx, "sweep complete",
			"scanned", res.Scanned,
			"removed", res.Removed,
			"failed", res.Failed,
		)
	}

	return res
}

func (s *Sweeper) sweepOne(ctx context.Context, id string) (bool, error) {
	unlock := s.locks.Lock(store.Tokens, id)
	defer unlock()

	token, err := s.tokens.FindByID(ctx, id)
	if err != nil {
		// logged out between list and read
		if errors.Is(err, core.ErrNotFound) {
			return false, nil
		}
		s.logger.ErrorContext(ctx, "sweep token failed",
			"token_id", id,
			"action", "read",
			"error", err,
		)
		return false, err
	}

	if !token.IsExpiredAt(s.now()) {
		return false, nil
	}

	if err := s.tokens.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return false, nil
		}
		s.logger.ErrorContext(ctx, "sweep token failed",
			"token_id", id,
			"action", "remove",
			"error", err,
		)
		return false, err
	}

	return true, nil
}
