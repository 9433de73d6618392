package cart

import "time"

// Item is one line of a cart. Price is snapshotted from the catalog at
// add time so later catalog changes never reprice a cart.
type Item struct {
	ProductID string    `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"short_name,omitempty"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image"`
	AddedAt   time.Time `json:"added_at"`
}

// Cart is a snapshot of one session's cart, detached from the store.
// Mutating it has no effect on the stored cart.
type Cart struct {
	Items []Item `json:"items"`
}

// Total is recomputed on every call, never cached.
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Empty reports whether the cart has no line items.
func (c Cart) Empty() bool {
	return len(c.Items) == 0
}
