package order

import (
	"encoding/json"
	"time"
)

// Customer is the contact and (simulated) payment data collected at checkout.
// swagger:model Customer
type Customer struct {
	Name    string `json:"name"    binding:"required"       example:"Jane Doe"`
	Email   string `json:"email"   binding:"required,email" example:"jane@example.com"`
	Phone   string `json:"phone"                            example:"+1 555 0100"`
	Address string `json:"address" binding:"required"       example:"1 Market St"`
	// Payment is free text; no payment gateway is involved.
	Payment string `json:"payment" binding:"required"       example:"card ending 4242"`
}

// Item is one cart line as sent to the API.
type Item struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Order is what the API returns after creation.
type Order struct {
	ID            int         `json:"id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	Address       string      `json:"address"`
	TotalPrice    json.Number `json:"total_price"` // DecimalField -> "20.00" or 20
	CreatedAt     time.Time   `json:"created_at"`
}
