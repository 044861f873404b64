// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pizzeria/internal/config"
	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/store"
)

type fakeUsers struct {
	mu     sync.Mutex
	users  map[string]*UserInfo
	rehash int
}

func newFakeUsers(t *testing.T, email, password string) *fakeUsers {
	t.Helper()
	hash, err := core.HashPassword(password)
	require.NoError(t, err)
	return &fakeUsers{users: map[string]*UserInfo{
		email: {Email: email, PasswordHash: hash},
	}}
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) UpdatePassword(_ context.Context, email, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rehash++
	f.users[email].PasswordHash = hash
	return nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T) (*Service, *clock, store.Store) {
	t.Helper()

	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	users := newFakeUsers(t, "alice@example.com", "correct-horse")
	svc := NewService(
		NewRepository(fs),
		users,
		store.NewKeyLocker(),
		config.TokenConfig{TTL: time.Hour, Length: 20, Header: "Authorization"},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	c := &clock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc.now = c.Now

	return svc, c, fs
}

func TestLogin_IssuesTokenWithTTL(t *testing.T) {
	svc, c, fs := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "  Alice@Example.com ", "correct-horse")
	require.NoError(t, err)

	assert.Len(t, token.ID, 20)
	assert.Regexp(t, `^[a-z0-9]{20}$`, token.ID)
	assert.Equal(t, "alice@example.com", token.Email)
	assert.Equal(t, c.Now().Add(time.Hour), token.ExpiresAt)

	var stored Token
	require.NoError(t, fs.Read(ctx, store.Tokens, token.ID, &stored))
	assert.Equal(t, token.Email, stored.Email)
	assert.True(t, token.ExpiresAt.Equal(stored.ExpiresAt))
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "alice@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), "bob@example.com", "whatever")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestVerify(t *testing.T) {
	svc, c, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)

	assert.True(t, svc.Verify(ctx, token.ID, "alice@example.com"))
	assert.False(t, svc.Verify(ctx, token.ID, "Alice@example.com"), "comparison is case-sensitive")
	assert.False(t, svc.Verify(ctx, token.ID, "bob@example.com"))
	assert.False(t, svc.Verify(ctx, "aaaaaaaaaaaaaaaaaaaa", "alice@example.com"))
	assert.False(t, svc.Verify(ctx, "", "alice@example.com"))

	c.Advance(time.Hour)
	assert.False(t, svc.Verify(ctx, token.ID, "alice@example.com"), "expires_at is exclusive")
}

func TestExtend_ValidToken(t *testing.T) {
	svc, c, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)

	c.Advance(30 * time.Minute)

	extended, err := svc.Extend(ctx, token.ID)
	require.NoError(t, err)
	assert.True(t, extended.ExpiresAt.After(token.ExpiresAt))
	assert.Equal(t, c.Now().Add(time.Hour), extended.ExpiresAt)

	got, err := svc.Get(ctx, token.ID)
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.Equal(extended.ExpiresAt))
}

func TestExtend_ExpiredTokenFails(t *testing.T) {
	svc, c, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)

	c.Advance(2 * time.Hour)

	_, err = svc.Extend(ctx, token.ID)
	assert.ErrorIs(t, err, core.ErrTokenExpired)

	got, err := svc.Get(ctx, token.ID)
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.Equal(token.ExpiresAt))
}

func TestExtend_Missing(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Extend(context.Background(), "aaaaaaaaaaaaaaaaaaaa")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestExtend_Concurrent(t *testing.T) {
	svc, c, fs := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)
	c.Advance(10 * time.Minute)

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Extend(ctx, token.ID)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	var stored Token
	require.NoError(t, fs.Read(ctx, store.Tokens, token.ID, &stored))
	assert.True(t, c.Now().Add(time.Hour).Equal(stored.ExpiresAt))
}

func TestExtend_RacingLogoutNeverResurrects(t *testing.T) {
	svc, _, fs := newTestService(t)
	ctx := context.Background()

	for range 5 {
		token, err := svc.Login(ctx, "alice@example.com", "correct-horse")
		require.NoError(t, err)

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.Extend(ctx, token.ID)
			}(i)
		}

		wg.Add(1)
		var logoutErr error
		go func() {
			defer wg.Done()
			logoutErr = svc.Logout(ctx, token.ID)
		}()
		wg.Wait()

		require.NoError(t, logoutErr)
		for _, err := range errs {
			if err != nil {
				assert.ErrorIs(t, err, core.ErrNotFound)
			}
		}

		var stored Token
		assert.ErrorIs(t, fs.Read(ctx, store.Tokens, token.ID, &stored), core.ErrNotFound)
	}
}

func TestLogout(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	token, err := svc.Login(ctx, "alice@example.com", "correct-horse")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token.ID))
	assert.False(t, svc.Verify(ctx, token.ID, "alice@example.com"))
	assert.ErrorIs(t, svc.Logout(ctx, token.ID), core.ErrNotFound)
}

func TestToTokenResponse(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tok := &Token{ID: "abc", Email: "a@b.io", ExpiresAt: now.Add(90 * time.Second)}

	resp := ToTokenResponse(tok, now)
	assert.Equal(t, 90, resp.ExpiresIn)

	resp = ToTokenResponse(tok, now.Add(time.Hour))
	assert.Equal(t, 0, resp.ExpiresIn)
}
