// AngelaMos | 2026
// store.go

// Package store is the record store: one JSON record per collection+key pair,
// with exclusive create, full-replace update, non-idempotent remove and key
// listing. Cross-record consistency is the callers' job; the store only
// guarantees single-key semantics.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/carterperez-dev/pizzeria/internal/core"
)

const (
	Users  = "users"
	Tokens = "tokens"
	Carts  = "cart"
	Orders = "orders"
	Menu   = "menuItems"
)

// Store is implemented by every record backend.
type Store interface {
	// Create fails with core.ErrDuplicateKey if the key already exists.
	Create(ctx context.Context, collection, key string, record any) error
	// Read decodes the record into dest. Undecodable content yields
	// core.ErrCorruptRecord.
	Read(ctx context.Context, collection, key string, dest any) error
	// Update replaces an existing record and fails with core.ErrNotFound
	// when the key was never created.
	Update(ctx context.Context, collection, key string, record any) error
	// Remove fails with core.ErrNotFound for a missing key.
	Remove(ctx context.Context, collection, key string) error
	// List never fails for an empty or missing collection.
	List(ctx context.Context, collection string) ([]string, error)
	Ping(ctx context.Context) error
}

func validateName(kind, name string) error {
	if name == "" ||
		strings.HasPrefix(name, ".") ||
		strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) ||
		strings.ContainsRune(name, 0) {
		return fmt.Errorf("%s %q: %w", kind, name, core.ErrInvalidInput)
	}
	return nil
}

func validateKey(collection, key string) error {
	if err := validateName("collection", collection); err != nil {
		return err
	}
	return validateName("key", key)
}
