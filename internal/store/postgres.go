// AngelaMos | 2026
// postgres.go

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/carterperez-dev/pizzeria/internal/core"
	"github.com/carterperez-dev/pizzeria/internal/store/migrations"
)

// PostgresStore keeps every collection in a single records table keyed by
// (collection, key), with the record body as JSONB.
type PostgresStore struct {
	db core.DBTX
}

func NewPostgresStore(db core.DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(
	ctx context.Context,
	collection, key string,
	record any,
) error {
	if err := validateKey(collection, key); err != nil {
		return fmt.Errorf("create %s/%s: %w", collection, key, err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("create %s/%s: encode: %w", collection, key, err)
	}

	query := `
		INSERT INTO records (collection, key, data)
		VALUES ($1, $2, $3)
		ON CONFLICT (collection, key) DO NOTHING`

	result, err := s.db.ExecContext(ctx, query, collection, key, data)
	if err != nil {
		return fmt.Errorf("create %s/%s: %w: %w", collection, key, core.ErrStorage, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create %s/%s: rows affected: %w: %w", collection, key, core.ErrStorage, err)
	}

	if rows == 0 {
		return fmt.Errorf("create %s/%s: %w", collection, key, core.ErrDuplicateKey)
	}

	return nil
}

func (s *PostgresStore) Read(
	ctx context.Context,
	collection, key string,
	dest any,
) error {
	if err := validateKey(collection, key); err != nil {
		return fmt.Errorf("read %s/%s: %w", collection, key, err)
	}

	query := `SELECT data FROM records WHERE collection = $1 AND key = $2`

	var data []byte
	err := s.db.GetContext(ctx, &data, query, collection, key)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read %s/%s: %w", collection, key, core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("read %s/%s: %w: %w", collection, key, core.ErrStorage, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("read %s/%s: %w: %w", collection, key, core.ErrCorruptRecord, err)
	}

	return nil
}

func (s *PostgresStore) Update(
	ctx context.Context,
	collection, key string,
	record any,
) error {
	if err := validateKey(collection, key); err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, key, err)
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("update %s/%s: encode: %w", collection, key, err)
	}

	query := `
		UPDATE records
		SET data = $3, updated_at = NOW()
		WHERE collection = $1 AND key = $2`

	result, err := s.db.ExecContext(ctx, query, collection, key, data)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w: %w", collection, key, core.ErrStorage, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s/%s: rows affected: %w: %w", collection, key, core.ErrStorage, err)
	}

	if rows == 0 {
		return fmt.Errorf("update %s/%s: %w", collection, key, core.ErrNotFound)
	}

	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, collection, key string) error {
	if err := validateKey(collection, key); err != nil {
		return fmt.Errorf("remove %s/%s: %w", collection, key, err)
	}

	query := `DELETE FROM records WHERE collection = $1 AND key = $2`

	result, err := s.db.ExecContext(ctx, query, collection, key)
	if err != nil {
		return fmt.Errorf("remove %s/%s: %w: %w", collection, key, core.ErrStorage, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove %s/%s: rows affected: %w: %w", collection, key, core.ErrStorage, err)
	}

	if rows == 0 {
		return fmt.Errorf("remove %s/%s: %w", collection, key, core.ErrNotFound)
	}

	return nil
}

func (s *PostgresStore) List(ctx context.Context, collection string) ([]string, error) {
	if err := validateName("collection", collection); err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	query := `SELECT key FROM records WHERE collection = $1 ORDER BY key`

	keys := []string{}
	if err := s.db.SelectContext(ctx, &keys, query, collection); err != nil {
		return nil, fmt.Errorf("list %s: %w: %w", collection, core.ErrStorage, err)
	}

	return keys, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	var one int
	if err := s.db.GetContext(ctx, &one, `SELECT 1`); err != nil {
		return fmt.Errorf("postgres store ping: %w: %w", core.ErrStorage, err)
	}
	return nil
}

var _ Store = (*PostgresStore)(nil)
