// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/carterperez-dev/pizzeria/internal/config"
	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/store"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const maxIssueAttempts = 3

type UserInfo struct {
	Email        string
	PasswordHash string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
}

type Service struct {
	repo         Repository
	userProvider UserProvider
	locks        *store.KeyLocker
	ttl          time.Duration
	length       int
	now          func() time.Time
	logger       *slog.Logger
}

func NewService(
	repo Repository,
	userProvider UserProvider,
	locks *store.KeyLocker,
	cfg config.TokenConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:         repo,
		userProvider: userProvider,
		locks:        locks,
		ttl:          cfg.TTL,
		length:       cfg.Length,
		now:          time.Now,
		logger:       logger.With("component", "tokens"),
	}
}

func (s *Service) TokenLength() int {
	return s.length
}

func (s *Service) Now() time.Time {
	return s.now()
}

// Login checks the password and issues a fresh token for the user.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (*Token, error) {
	email = NormalizeEmail(email)

	user, err := s.userProvider.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // timing attack prevention - always verify to prevent enumeration
			_, _, _ = core.VerifyPasswordTimingSafe(password, nil)
			return nil, fmt.Errorf("login: %w", core.ErrNotFound)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(
		password,
		&user.PasswordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	if newHash != "" {
		if err := s.userProvider.UpdatePassword(ctx, user.Email, newHash); err != nil {
			s.logger.Warn("password rehash failed", "email", user.Email, "error", err)
		}
	}

	return s.issue(ctx, user.Email)
}

func (s *Service) issue(ctx context.Context, email string) (*Token, error) {
	for range maxIssueAttempts {
		id, err := core.GenerateID(s.length)
		if err != nil {
			return nil, fmt.Errorf("generate token id: %w", err)
		}

		token := &Token{
			ID:        id,
			Email:     email,
			ExpiresAt: s.now().Add(s.ttl),
		}

		err = s.repo.Create(ctx, token)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, core.ErrDuplicateKey) {
			return nil, fmt.Errorf("issue token: %w", err)
		}
	}

	return nil, fmt.Errorf("issue token: %w", core.ErrDuplicateKey)
}

func (s *Service) Get(ctx context.Context, id string) (*Token, error) {
	token, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return token, nil
}

// Extend pushes the expiry of a still-valid token to now+TTL. An expired
// token cannot be revived.
func (s *Service) Extend(ctx context.Context, id string) (*Token, error) {
	unlock := s.locks.Lock(store.Tokens, id)
	defer unlock()

	token, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if token.IsExpiredAt(now) {
		return nil, fmt.Errorf("extend token: %w", core.ErrTokenExpired)
	}

	token.ExpiresAt = now.Add(s.ttl)

	if err := s.repo.Update(ctx, token); err != nil {
		return nil, err
	}

	return token, nil
}

func (s *Service) Logout(ctx context.Context, id string) error {
	unlock := s.locks.Lock(store.Tokens, id)
	defer unlock()

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

// Verify reports whether id names an unexpired token issued to email.
// The email comparison is exact.
func (s *Service) Verify(ctx context.Context, id, email string) bool {
	if id == "" || email == "" {
		return false
	}

	token, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, core.ErrNotFound) {
			s.logger.Warn("token lookup failed", "error", err)
		}
		return false
	}

	return token.IsValidFor(email, s.now())
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
