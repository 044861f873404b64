// AngelaMos | 2026
// entity.go

package menu

import "math"

type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Cents converts a major-unit price to integer minor units.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// Total sums item prices in minor units so 12 + 2 is exactly 14.
func Total(items []Item) float64 {
	var cents int64
	for _, it := range items {
		cents += Cents(it.Price)
	}
	return FromCents(cents)
}

var DefaultItems = []Item{
	{Name: "Margherita", Price: 12},
	{Name: "Pepperoni", Price: 14},
	{Name: "Hawaiian", Price: 13.5},
	{Name: "Quattro Formaggi", Price: 15},
	{Name: "Garlic Bread", Price: 5},
	{Name: "Caesar Salad", Price: 7.25},
	{Name: "Tiramisu", Price: 6},
	{Name: "Coke", Price: 2},
}
