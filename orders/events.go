package orders

import (
	"context"
	"errors"
	"shop/db"
	"shop/entities"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

type EventsHandler struct {
	orderRepo db.IOrderRepository
}

func NewEventsHandler(orderRepo db.IOrderRepository) EventsHandler {
	if orderRepo == nil {
		panic("orderRepo is nil")
	}
	return EventsHandler{
		orderRepo: orderRepo,
	}
}

// OnStockReserved confirms a PENDING order. Events for unknown orders or
// orders already in a terminal state are logged and dropped, so redelivery
// never re-fires side effects.
func (h EventsHandler) OnStockReserved(ctx context.Context, event *entities.StockReserved_v1) error {
	logger := log.FromContext(ctx).WithField("order_id", event.OrderID)
	logger.Info("Received StockReserved event")

	applied, err := h.orderRepo.Confirm(ctx, event.OrderID)
	if errors.Is(err, db.ErrOrderNotFound) {
		logger.Warn("StockReserved for an unknown order, dropping")
		return nil
	}
	if err != nil {
		return err
	}
	if !applied {
		logger.Info("Order already in a terminal state, skipping")
		return nil
	}

	logger.Info("Order confirmed")
	return nil
}

// OnStockRejected cancels a PENDING order, recording the rejection reason.
// Idempotent the same way OnStockReserved is.
func (h EventsHandler) OnStockRejected(ctx context.Context, event *entities.StockRejected_v1) error {
	logger := log.FromContext(ctx).WithField("order_id", event.OrderID)
	logger.Info("Received StockRejected event")

	applied, err := h.orderRepo.Cancel(ctx, event.OrderID, event.Reason)
	if errors.Is(err, db.ErrOrderNotFound) {
		logger.Warn("StockRejected for an unknown order, dropping")
		return nil
	}
	if err != nil {
		return err
	}
	if !applied {
		logger.Info("Order already in a terminal state, skipping")
		return nil
	}

	logger.WithField("reason", event.Reason).Info("Order cancelled")
	return nil
}
