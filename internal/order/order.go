// Package order defines the canonical order record. The checkout
// pipeline, the Mongo repository and the HTTP layer all share these
// types, so the fields written at submission time and the fields the
// persistence schema knows about cannot drift apart.
package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

func (s Status) String() string {
	return string(s)
}

// allowedTransitions describes the fulfillment lifecycle. Orders are
// inserted as pending; everything after that belongs to fulfillment,
// never to the client that placed the order.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true,
	},
	StatusConfirmed: {
		StatusShipped: true,
	},
	StatusShipped: {
		StatusDelivered: true,
	},
	StatusDelivered: {},
}

// CanTransition reports whether an order may move from s to next.
func (s Status) CanTransition(next Status) bool {
	return allowedTransitions[s][next]
}

type PaymentMethod string

const (
	PaymentEMoney PaymentMethod = "e-money"
	PaymentCash   PaymentMethod = "cash"
)

// LineItem is a cart line frozen into a placed order.
type LineItem struct {
	ProductID string  `bson:"product_id" json:"id"`
	Name      string  `bson:"name" json:"name"`
	ShortName string  `bson:"short_name,omitempty" json:"short_name,omitempty"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Image     string  `bson:"image" json:"image"`
}

// Order is the persisted order record. The line items are a snapshot
// taken at submission time, decoupled from the live cart.
type Order struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	CustomerName  string `bson:"customer_name" json:"customer_name"`
	CustomerEmail string `bson:"customer_email" json:"customer_email"`
	CustomerPhone string `bson:"customer_phone" json:"customer_phone"`

	ShippingAddress string `bson:"shipping_address" json:"shipping_address"`
	ZipCode         string `bson:"zip_code" json:"zip_code"`
	City            string `bson:"city" json:"city"`
	Country         string `bson:"country" json:"country"`

	PaymentMethod PaymentMethod `bson:"payment_method" json:"payment_method"`
	EMoneyNumber  string        `bson:"e_money_number,omitempty" json:"e_money_number,omitempty"`
	EMoneyPin     string        `bson:"e_money_pin,omitempty" json:"e_money_pin,omitempty"`

	Items []LineItem `bson:"items" json:"items"`

	Subtotal   float64 `bson:"subtotal" json:"subtotal"`
	Shipping   float64 `bson:"shipping" json:"shipping"`
	VAT        float64 `bson:"vat" json:"vat"`
	GrandTotal float64 `bson:"grand_total" json:"grand_total"`

	Status    Status    `bson:"status" json:"status"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
