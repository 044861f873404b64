// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type CreateUserRequest struct {
	FirstName       string `json:"first_name"       validate:"required,min=1,max=100"`
	LastName        string `json:"last_name"        validate:"required,min=1,max=100"`
	Email           string `json:"email"            validate:"required,email,max=255"`
	Street          string `json:"street"           validate:"required,min=1,max=255"`
	Password        string `json:"password"         validate:"required,min=8,max=128"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	TOSAgreement    bool   `json:"tos_agreement"    validate:"required"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty"  validate:"omitempty,min=1,max=100"`
	Street    *string `json:"street,omitempty"     validate:"omitempty,min=1,max=255"`
	Password  *string `json:"password,omitempty"   validate:"omitempty,min=8,max=128"`
}

func (r UpdateUserRequest) IsEmpty() bool {
	return r.FirstName == nil && r.LastName == nil && r.Street == nil && r.Password == nil
}

type UserResponse struct {
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Street       string    `json:"street"`
	TOSAgreement bool      `json:"tos_agreement"`
	JoinedOn     time.Time `json:"joined_on"`
	CartID       *string   `json:"cart_id"`
	OrderIDs     []string  `json:"order_ids"`
}

func ToUserResponse(u *User) UserResponse {
	orderIDs := u.OrderIDs
	if orderIDs == nil {
		orderIDs = []string{}
	}

	return UserResponse{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Street:       u.Street,
		TOSAgreement: u.TOSAgreement,
		JoinedOn:     u.JoinedOn,
		CartID:       u.CartID,
		OrderIDs:     orderIDs,
	}
}
