package order

import (
	"encoding/json"

	"github.com/MikeMC777/butchery-shop/internal/cart"
)

// CreateOrderRequest is the JSON body of POST /api/orders/.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
	CustomerPhone  string `json:"customer_phone"`
	Address        string `json:"address"`
	PaymentDetails string `json:"payment_details"`
	// Products lists each product id once, whatever its quantity.
	Products []int `json:"products"`
	// Items carries the per-line quantities the product list cannot express.
	Items      []Item      `json:"items"`
	TotalPrice json.Number `json:"total_price" swaggertype:"number" example:"20.00"`
}

// BuildRequest turns a customer and a cart into an order payload.
func BuildRequest(cu Customer, c *cart.Cart) CreateOrderRequest {
	items := make([]Item, 0, c.Len())
	for _, l := range c.Lines {
		items = append(items, Item{ProductID: l.Product.ID, Quantity: l.Quantity})
	}
	return CreateOrderRequest{
		CustomerName:   cu.Name,
		CustomerEmail:  cu.Email,
		CustomerPhone:  cu.Phone,
		Address:        cu.Address,
		PaymentDetails: cu.Payment,
		Products:       c.ProductIDs(),
		Items:          items,
		TotalPrice:     json.Number(c.Total().StringFixed(2)),
	}
}
