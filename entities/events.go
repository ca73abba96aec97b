package entities

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID            string    `json:"id"`
	CorrelationID string    `json:"correlation_id"`
	PublishedAt   time.Time `json:"published_at"`
}

// NewEventHeader stamps a fresh event ID and carries the given correlation
// ID. The correlation ID is generated once per order-creation attempt and
// must travel unchanged through both outcome events.
func NewEventHeader(correlationID string) EventHeader {
	return EventHeader{
		ID:            uuid.NewString(),
		CorrelationID: correlationID,
		PublishedAt:   time.Now().UTC(),
	}
}

type OrderCreated_v1 struct {
	Header EventHeader `json:"header"`

	OrderID    uuid.UUID   `json:"order_id"`
	CustomerID string      `json:"customer_id"`
	Lines      []OrderLine `json:"lines"`
}

type StockReserved_v1 struct {
	Header EventHeader `json:"header"`

	OrderID    uuid.UUID `json:"order_id"`
	ReservedAt time.Time `json:"reserved_at"`
}

type StockRejected_v1 struct {
	Header EventHeader `json:"header"`

	OrderID    uuid.UUID `json:"order_id"`
	Reason     string    `json:"reason"`
	RejectedAt time.Time `json:"rejected_at"`
}
