package message

import (
	"fmt"
)

// Topology declares the broker layout explicitly: one logical exchange,
// per-event routing keys, and the queues each side of the saga consumes
// from. Events travel on streams named "<exchange>.<routing key>"; queue
// names become consumer groups.
type Topology struct {
	Exchange string

	InventoryOrdersQueue string
	OrdersResultsQueue   string

	OrderCreatedKey  string
	StockReservedKey string
	StockRejectedKey string
}

func NewTopology() Topology {
	return Topology{
		Exchange:             "orders.exchange",
		InventoryOrdersQueue: "inventory.orders.queue",
		OrdersResultsQueue:   "orders.results.queue",
		OrderCreatedKey:      "order.created",
		StockReservedKey:     "stock.reserved",
		StockRejectedKey:     "stock.rejected",
	}
}

func (t Topology) routingKey(eventName string) (string, error) {
	switch eventName {
	case "OrderCreated_v1":
		return t.OrderCreatedKey, nil
	case "StockReserved_v1":
		return t.StockReservedKey, nil
	case "StockRejected_v1":
		return t.StockRejectedKey, nil
	}
	return "", fmt.Errorf("no routing key bound for event %s", eventName)
}

// Topic maps an event name to the stream it is published on.
func (t Topology) Topic(eventName string) (string, error) {
	key, err := t.routingKey(eventName)
	if err != nil {
		return "", err
	}
	return t.Exchange + "." + key, nil
}

// Queue maps an event name to the queue bound to its routing key.
func (t Topology) Queue(eventName string) (string, error) {
	switch eventName {
	case "OrderCreated_v1":
		return t.InventoryOrdersQueue, nil
	case "StockReserved_v1", "StockRejected_v1":
		return t.OrdersResultsQueue, nil
	}
	return "", fmt.Errorf("no queue bound for event %s", eventName)
}

// Topics lists every stream carried by the exchange, in routing-key order.
func (t Topology) Topics() []string {
	return []string{
		t.Exchange + "." + t.OrderCreatedKey,
		t.Exchange + "." + t.StockReservedKey,
		t.Exchange + "." + t.StockRejectedKey,
	}
}
