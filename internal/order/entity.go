// AngelaMos | 2026
// entity.go

package order

import (
	"time"

	"github.com/carterperez-dev/pizzeria/internal/menu"
)

// Order is written once at the end of a successful checkout and never
// modified afterwards.
type Order struct {
	ID           string      `json:"id"`
	UserEmail    string      `json:"user_email"`
	OrderedAt    time.Time   `json:"ordered_at"`
	OrderTotal   float64     `json:"order_total"`
	ItemsOrdered []menu.Item `json:"items_ordered"`
	ChargeID     string      `json:"charge_id"`
}
