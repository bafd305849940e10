package product

import (
	"encoding/json"
	"strconv"
)

// Product is a catalog item as served by the shop API. The API assigns IDs.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// DecimalField on the API side, sent quoted or bare. Kept as text to avoid rounding.
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
	Image    string      `json:"image,omitempty"`
}

// InStock reports whether at least one unit is on hand.
func (p Product) InStock() bool { return p.Quantity > 0 }

// Image is an uploaded product picture.
type Image struct {
	Filename string
	Data     []byte
}

// Form is the payload of product creation and full update. Update never sends Image.
type Form struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Image       *Image `json:"-"`
}

// FormFromProduct pre-fills an edit form with the product's current values.
func FormFromProduct(p Product) Form {
	return Form{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Quantity:    p.Quantity,
	}
}

// Fields returns the multipart text fields in the order the API expects them.
func (f Form) Fields() [][2]string {
	return [][2]string{
		{"name", f.Name},
		{"description", f.Description},
		{"price", f.Price},
		{"quantity", strconv.Itoa(f.Quantity)},
	}
}

// FormRequest is the multipart form accepted by the admin product endpoints.
// swagger:model FormRequest
type FormRequest struct {
	Name        string `form:"name"        binding:"required" example:"Ribs"`
	Description string `form:"description"                    example:"Pork ribs, 1kg"`
	Price       string `form:"price"       binding:"required" example:"15.50"`
	Quantity    *int   `form:"quantity"    binding:"required,min=0" example:"3"`
}

// ListResponse represents the product list returned by the services.
// swagger:model
type ListResponse struct {
	Items []Product `json:"items"`
}
