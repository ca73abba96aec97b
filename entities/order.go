package entities

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusConfirmed || s == OrderStatusCancelled
}

type OrderLine struct {
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

type ShippingAddress struct {
	Country    string `json:"country" db:"country"`
	City       string `json:"city" db:"city"`
	Street     string `json:"street" db:"street"`
	PostalCode string `json:"postal_code" db:"postal_code"`
	Zip        string `json:"zip" db:"zip"`
}

type Order struct {
	OrderID          uuid.UUID       `json:"order_id" db:"order_id"`
	CustomerID       string          `json:"customer_id" db:"customer_id"`
	Status           OrderStatus     `json:"status" db:"status"`
	Message          string          `json:"message" db:"message"`
	Reason           string          `json:"reason" db:"reason"`
	Lines            []OrderLine     `json:"lines"`
	ShippingAddress  ShippingAddress `json:"shipping_address" db:"shipping_address"`
	PaymentReference string          `json:"payment_reference" db:"payment_reference"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}
