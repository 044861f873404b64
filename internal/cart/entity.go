// AngelaMos | 2026
// entity.go

package cart

import (
	"time"

	"github.com/carterperez-dev/pizzeria/internal/menu"
)

type Cart struct {
	ID        string      `json:"id"`
	UserEmail string      `json:"user_email"`
	Items     []menu.Item `json:"items"`
	Total     float64     `json:"total"`
	Purchased bool        `json:"purchased"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (c *Cart) ItemNames() []string {
	names := make([]string, 0, len(c.Items))
	for _, it := range c.Items {
		names = append(names, it.Name)
	}
	return names
}
