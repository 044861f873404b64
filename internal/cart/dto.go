// AngelaMos | 2026
// dto.go

package cart

type CreateCartRequest struct {
	Email string   `json:"email" validate:"required,email,max=255"`
	Items []string `json:"items" validate:"required,min=1,max=50,dive,required,max=100"`
}

type ReplaceCartRequest struct {
	CartID string   `json:"cart_id" validate:"required"`
	Items  []string `json:"items"   validate:"required,min=1,max=50,dive,required,max=100"`
}

type CartResponse struct {
	*Cart
	Dropped []string `json:"dropped_items,omitempty"`
}
