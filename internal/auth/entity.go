// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// Token is a bearer session: an opaque random id bound to one user email
// until ExpiresAt. Expiry is the only validity criterion.
type Token struct {
	ID        string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (t *Token) IsExpiredAt(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *Token) IsValidFor(email string, now time.Time) bool {
	return t.Email == email && !t.IsExpiredAt(now)
}
