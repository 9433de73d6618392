// Package pricing turns cart contents into a priced order total.
//
// Pricing policy: VAT is charged at 20% of the subtotal, rounded to the
// nearest whole currency unit, and is already included in the subtotal.
// It is shown for display only and is never added again, so the grand
// total is always subtotal plus the flat shipping fee.
package pricing

import (
	"math"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/cart"
)

const (
	// ShippingFee is the flat delivery charge applied to every order.
	ShippingFee float64 = 50

	// VATRate is the included value-added tax rate.
	VATRate = 0.20
)

// Quote is the priced breakdown of a cart.
type Quote struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	VAT        float64 `json:"vat"`
	GrandTotal float64 `json:"grand_total"`
}

// ForCart prices the given cart. Pure: the same cart always yields the
// same quote.
func ForCart(c cart.Cart) Quote {
	subtotal := c.Total()
	return Quote{
		Subtotal:   subtotal,
		Shipping:   ShippingFee,
		VAT:        math.Round(subtotal * VATRate),
		GrandTotal: subtotal + ShippingFee,
	}
}
