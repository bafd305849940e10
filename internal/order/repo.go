// Package order builds checkout payloads and submits them through a Repository.
package order

import (
	"context"
	"errors"
)

var ErrEmptyCart = errors.New("cart is empty")

// Repository creates orders; the shop API is the only implementation.
type Repository interface {
	Create(ctx context.Context, req CreateOrderRequest) (*Order, error)
}
