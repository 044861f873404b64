// AngelaMos | 2026
// entity.go

package user

import (
	"slices"
	"time"
)

type User struct {
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Street       string    `json:"street"`
	PasswordHash string    `json:"password_hash"`
	TOSAgreement bool      `json:"tos_agreement"`
	JoinedOn     time.Time `json:"joined_on"`
	CartID       *string   `json:"cart_id"`
	OrderIDs     []string  `json:"order_ids"`
}

func (u *User) HasCart() bool {
	return u.CartID != nil && *u.CartID != ""
}

func (u *User) HasOrder(orderID string) bool {
	return slices.Contains(u.OrderIDs, orderID)
}
