// AngelaMos | 2026
// dto.go

package auth

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type ExtendRequest struct {
	Token  string `json:"token"  validate:"required"`
	Extend bool   `json:"extend" validate:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int       `json:"expires_in"`
}

func ToTokenResponse(t *Token, now time.Time) TokenResponse {
	expiresIn := int(t.ExpiresAt.Sub(now) / time.Second)
	if expiresIn < 0 {
		expiresIn = 0
	}

	return TokenResponse{
		Token:     t.ID,
		Email:     t.Email,
		ExpiresAt: t.ExpiresAt,
		ExpiresIn: expiresIn,
	}
}
