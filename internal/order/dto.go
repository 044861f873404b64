// AngelaMos | 2026
// dto.go

package order

type CheckoutRequest struct {
	CartID string `json:"cart_id" validate:"required,max=64"`
}

type OrderResponse struct {
	*Order
	Warnings []string `json:"warnings,omitempty"`
}
