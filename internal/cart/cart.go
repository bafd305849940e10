// Package cart implements the visitor's shopping cart and its total arithmetic.
package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/MikeMC777/butchery-shop/internal/product"
)

var ErrOutOfStock = errors.New("product out of stock")

// Line pairs a product with the requested quantity. Quantity is always >= 1.
type Line struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart keeps one line per product, in the order products were first added.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add puts one more unit of p in the cart. Products with no stock are refused.
func (c *Cart) Add(p product.Product) error {
	if !p.InStock() {
		return ErrOutOfStock
	}
	for i := range c.Lines {
		if c.Lines[i].Product.ID == p.ID {
			c.Lines[i].Quantity++
			return nil
		}
	}
	c.Lines = append(c.Lines, Line{Product: p, Quantity: 1})
	return nil
}

// Remove drops the whole line for productID. Unknown ids are ignored.
func (c *Cart) Remove(productID int) {
	out := c.Lines[:0]
	for _, l := range c.Lines {
		if l.Product.ID != productID {
			out = append(out, l)
		}
	}
	c.Lines = out
}

func (c *Cart) Clear() { c.Lines = nil }

func (c *Cart) Len() int { return len(c.Lines) }

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// ProductIDs returns each product id once, in cart order.
func (c *Cart) ProductIDs() []int {
	ids := make([]int, 0, len(c.Lines))
	for _, l := range c.Lines {
		ids = append(ids, l.Product.ID)
	}
	return ids
}

// Total is recomputed from the lines on every call.
func (c *Cart) Total() decimal.Decimal { return Total(c.Lines) }

// LineTotal is unit price times quantity. A price that does not parse counts as zero.
func LineTotal(l Line) decimal.Decimal {
	price, err := product.ParsePrice(l.Product.Price.String())
	if err != nil {
		return decimal.Zero
	}
	return price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total sums LineTotal over lines.
func Total(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineTotal(l))
	}
	return sum
}

// FormatMoney renders an amount the way the shop displays it, e.g. "$10.00".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
