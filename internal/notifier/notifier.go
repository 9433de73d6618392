package notifier

import (
	"context"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/order"
)

// Confirmation carries everything the order-confirmation email needs.
type Confirmation struct {
	To         string
	Name       string
	OrderID    string
	Items      []order.LineItem
	GrandTotal float64
}

// Notifier sends the order-confirmation message. Sending is best
// effort: a failure never unwinds the order it confirms.
type Notifier interface {
	SendConfirmation(ctx context.Context, c Confirmation) error
}
