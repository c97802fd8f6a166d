package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Carts and orders hold full copies of it
// (snapshots), so later catalog edits never change what a user already
// added or bought.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// Validate performs business validation on the product
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrInvalidProductName
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// ParsePrice parses a user-supplied price string into a non-negative
// decimal amount.
func ParsePrice(s string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(s)
	if err != nil || price.IsNegative() {
		return decimal.Zero, ErrInvalidPrice
	}
	return price, nil
}

// Total sums the snapshot prices of the given items. It never consults
// the current catalog.
func Total(items []Product) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	return total
}
