// Package product holds the catalog model shared by the storefront and admin services
// and the repository contract they use to reach the shop API.
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("product not found")
	ErrInvalid  = errors.New("invalid product")
)

// Repository is implemented on top of the shop API; the services never touch storage directly.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int) (*Product, error)
	Create(ctx context.Context, f Form) (*Product, error)
	// Update replaces every editable field; it is not a partial patch.
	Update(ctx context.Context, id int, f Form) (*Product, error)
	Delete(ctx context.Context, id int) error
}

// ParsePrice parses a price as decimal text ("10", "10.5", "10.00").
func ParsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("price %q: %w", s, err)
	}
	return d, nil
}

// Validate checks what the form can check locally. Semantic checks stay with the API.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if strings.TrimSpace(f.Price) == "" {
		return fmt.Errorf("%w: price is required", ErrInvalid)
	}
	p, err := ParsePrice(f.Price)
	if err != nil {
		return fmt.Errorf("%w: price must be a number", ErrInvalid)
	}
	if p.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalid)
	}
	if f.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalid)
	}
	return nil
}
