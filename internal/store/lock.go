// AngelaMos | 2026
// lock.go

package store

import (
	"sync"

	"github.com/moby/locker"
)

// KeyLocker serializes read-modify-write sequences on a single record.
// Callers that need two locks take them in collection order cart before
// users.
type KeyLocker struct {
	named *locker.Locker
}

func NewKeyLocker() *KeyLocker {
	return &KeyLocker{named: locker.New()}
}

// Lock blocks until the record is free and returns its unlock func.
// Calling the returned func more than once is a no-op.
func (l *KeyLocker) Lock(collection, key string) func() {
	name := collection + "/" + key
	l.named.Lock(name)

	var once sync.Once
	return func() {
		once.Do(func() {
			//nolint:errcheck // name is always held here
			_ = l.named.Unlock(name)
		})
	}
}
