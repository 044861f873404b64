// AngelaMos | 2026
// file.go

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/carterperez-dev/pizzeria/internal/core"
)

const (
	recordExt  = ".json"
	tempPrefix = ".tmp-"
	dirPerm    = 0o750
	filePerm   = 0o640
)

// FileStore keeps each record in <baseDir>/<collection>/<key>.json.
type FileStore struct {
	baseDir string
}

func NewFileStore(baseDir string) (*FileStore, error) {
	if err := os.MkdirAll(baseDir, dirPerm); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", baseDir, err)
	}

	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve data dir %s: %w", baseDir, err)
	}

	return &FileStore{baseDir: abs}, nil
}

func (s *FileStore) BaseDir() string {
	return s.baseDir
}

func (s *FileStore) Create(
	ctx context.Context,
	collection, key string,
	record any,
) error {
	if err := s.check(ctx, collection, key); err != nil {
		return fmt.Errorf("create %s/%s: %w", collection, key, err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("create %s/%s: encode: %w", collection, key, err)
	}

	dir, err := s.ensureCollection(collection)
	if err != nil {
		return fmt.Errorf("create %s/%s: %w", collection, key, err)
	}

	path := filepath.Join(dir, key+recordExt)

	//nolint:gosec // G304: key validated against traversal in check
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("create %s/%s: %w", collection, key, core.ErrDuplicateKey)
		}
		return fmt.Errorf("create %s/%s: %w: %w", collection, key, core.ErrStorage, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()       //nolint:errcheck // already failing
		_ = os.Remove(path) //nolint:errcheck // partial record
		return fmt.Errorf("create %s/%s: write: %w: %w", collection, key, core.ErrStorage, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("create %s/%s: close: %w: %w", collection, key, core.ErrStorage, err)
	}

	return nil
}

func (s *FileStore) Read(
	ctx context.Context,
	collection, key string,
	dest any,
) error {
	if err := s.check(ctx, collection, key); err != nil {
		return fmt.Errorf("read %s/%s: %w", collection, key, err)
	}

	data, err := os.ReadFile(s.recordPath(collection, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s/%s: %w", collection, key, core.ErrNotFound)
		}
		return fmt.Errorf("read %s/%s: %w: %w", collection, key, core.ErrStorage, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("read %s/%s: %w: %w", collection, key, core.ErrCorruptRecord, err)
	}

	return nil
}

// Update writes the new content to a temp file next to the record and renames
// it into place, so readers see either the old or the new record.
func (s *FileStore) Update(
	ctx context.Context,
	collection, key string,
	record any,
) error {
	if err := s.check(ctx, collection, key); err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, key, err)
	}

	path := s.recordPath(collection, key)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("update %s/%s: %w", collection, key, core.ErrNotFound)
		}
		return fmt.Errorf("update %s/%s: %w: %w", collection, key, core.ErrStorage, err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("update %s/%s: encode: %w", collection, key, err)
	}

	if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("update %s/%s: %w: %w", collection, key, core.ErrStorage, err)
	}

	return nil
}

func (s *FileStore) Remove(ctx context.Context, collection, key string) error {
	if err := s.check(ctx, collection, key); err != nil {
		return fmt.Errorf("remove %s/%s: %w", collection, key, err)
	}

	if err := os.Remove(s.recordPath(collection, key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s/%s: %w", collection, key, core.ErrNotFound)
		}
		return fmt.Errorf("remove %s/%s: %w: %w", collection, key, core.ErrStorage, err)
	}

	return nil
}

func (s *FileStore) List(ctx context.Context, collection string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}

	if err := validateName("collection", collection); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	entries, err := os.ReadDir(filepath.Join(s.baseDir, collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list %s: %w: %w", collection, core.ErrStorage, err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() ||
			strings.HasPrefix(name, ".") ||
			!strings.HasSuffix(name, recordExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, recordExt))
	}

	return keys, nil
}

// Ping verifies the data directory is still reachable and writable.
func (s *FileStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.CreateTemp(s.baseDir, tempPrefix+"ping-")
	if err != nil {
		return fmt.Errorf("file store ping: %w: %w", core.ErrStorage, err)
	}
	name := f.Name()
	_ = f.Close()       //nolint:errcheck // ping file
	_ = os.Remove(name) //nolint:errcheck // ping file

	return nil
}

func (s *FileStore) check(ctx context.Context, collection, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return validateKey(collection, key)
}

func (s *FileStore) recordPath(collection, key string) string {
	return filepath.Join(s.baseDir, collection, key+recordExt)
}

func (s *FileStore) ensureCollection(collection string) (string, error) {
	dir := filepath.Join(s.baseDir, collection)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w: %w", dir, core.ErrStorage, err)
	}
	return dir, nil
}

// writeAtomic replaces path in a single rename. Temp files are hidden
// dot files in the same directory so List never reports them.
func writeAtomic(path string, data []byte) error {
	return renameio.WriteFile(path, data, filePerm)
}

var _ Store = (*FileStore)(nil)
