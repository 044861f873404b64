// AngelaMos | 2026
// sweeper_test.go

package sweeper

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/pizzeria/internal/auth"
	"github.com/carterperez-dev/pizzeria/internal/store"
)

var epoch = time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)

func seed(t *testing.T, repo auth.Repository, id string, expires time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &auth.Token{
		ID:        id,
		Email:     "al@example.com",
		ExpiresAt: expires,
	}))
}

func newSweeper(t *testing.T, logs io.Writer) (*Sweeper, auth.Repository, *store.FileStore) {
	t.Helper()

	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	repo := auth.NewRepository(fs)
	s := New(repo, store.NewKeyLocker(), time.Hour, slog.New(slog.NewJSONHandler(logs, nil)))
	s.now = func() time.Time { return epoch }

	return s, repo, fs
}

func TestSweep_RemovesOnlyExpired(t *testing.T) {
	s, repo, _ := newSweeper(t, io.Discard)
	ctx := context.Background()

	seed(t, repo, "expired0000000000001", epoch.Add(-time.Minute))
	seed(t, repo, "expired0000000000002", epoch)
	seed(t, repo, "valid000000000000001", epoch.Add(time.Minute))

	res := s.Sweep(ctx)
	assert.Equal(t, Result{Scanned: 3, Removed: 2}, res)

	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"valid000000000000001"}, ids)

	res = s.Sweep(ctx)
	assert.Equal(t, Result{Scanned: 1}, res)
}

func TestSweep_EmptyStore(t *testing.T) {
	s, _, _ := newSweeper(t, io.Discard)

	assert.Equal(t, Result{}, s.Sweep(context.Background()))
}

func TestSweep_CorruptRecordDoesNotAbort(t *testing.T) {
	logs := &bytes.Buffer{}
	s, repo, fs := newSweeper(t, logs)
	ctx := context.Background()

	seed(t, repo, "expired0000000000001", epoch.Add(-time.Hour))
	require.NoError(t, os.WriteFile(
		filepath.Join(fs.BaseDir(), store.Tokens, "broken00000000000001.json"),
		[]byte("{not json"),
		0o640,
	))

	res := s.Sweep(ctx)
	assert.Equal(t, 2, res.Scanned)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, 1, res.Failed)

	assert.Contains(t, logs.String(), `"token_id":"broken00000000000001"`)
	assert.Contains(t, logs.String(), `"action":"read"`)
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, repo, _ := newSweeper(t, io.Discard)
	seed(t, repo, "expired0000000000001", epoch.Add(-time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		ids, err := repo.ListIDs(context.Background())
		return err == nil && len(ids) == 0
	}, time.Second, 10*time.Millisecond, "initial sweep runs immediately")

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
