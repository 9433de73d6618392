package repository

import (
	"context"
	"errors"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/order"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrInvalidOrderID = errors.New("invalid order id")
)

// OrderRepository defines the interface for order persistence.
// Consumers define this interface, not the MongoDB implementation.
type OrderRepository interface {
	// Insert stores a new order and returns its storage-assigned id.
	Insert(ctx context.Context, o *order.Order) (string, error)
	GetByID(ctx context.Context, id string) (*order.Order, error)
	// FindByEmail returns a customer's orders in chronological order.
	FindByEmail(ctx context.Context, email string) ([]order.Order, error)
}
