package shopapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MikeMC777/butchery-shop/internal/order"
	"github.com/MikeMC777/butchery-shop/internal/product"
)

// ProductRepo implements product.Repository over the API.
type ProductRepo struct{ c *Client }

func (c *Client) Products() *ProductRepo { return &ProductRepo{c: c} }

var _ product.Repository = (*ProductRepo)(nil)

func (r *ProductRepo) List(ctx context.Context) ([]product.Product, error) {
	return r.c.ListProducts(ctx)
}

func (r *ProductRepo) GetByID(ctx context.Context, id int) (*product.Product, error) {
	p, err := r.c.GetProduct(ctx, id)
	return p, notFound(err)
}

func (r *ProductRepo) Create(ctx context.Context, f product.Form) (*product.Product, error) {
	return r.c.CreateProduct(ctx, f)
}

func (r *ProductRepo) Update(ctx context.Context, id int, f product.Form) (*product.Product, error) {
	p, err := r.c.UpdateProduct(ctx, id, f)
	return p, notFound(err)
}

func (r *ProductRepo) Delete(ctx context.Context, id int) error {
	return notFound(r.c.DeleteProduct(ctx, id))
}

// notFound keeps the APIError in the chain so callers can still read its body.
func notFound(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%w: %w", product.ErrNotFound, err)
	}
	return err
}

// OrderRepo implements order.Repository over the API.
type OrderRepo struct{ c *Client }

func (c *Client) Orders() *OrderRepo { return &OrderRepo{c: c} }

var _ order.Repository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(ctx context.Context, req order.CreateOrderRequest) (*order.Order, error) {
	return r.c.CreateOrder(ctx, req)
}
