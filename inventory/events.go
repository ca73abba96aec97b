package inventory

import (
	"context"
	"shop/entities"
	"shop/pkg/metrics"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
)

type EventsHandler struct {
	svc         Service
	eventBus    *cqrs.EventBus
	sagaMetrics *metrics.SagaMetrics
}

func NewEventsHandler(svc Service, eventBus *cqrs.EventBus, sagaMetrics *metrics.SagaMetrics) EventsHandler {
	if eventBus == nil {
		panic("eventBus is nil")
	}
	return EventsHandler{
		svc:         svc,
		eventBus:    eventBus,
		sagaMetrics: sagaMetrics,
	}
}

// OnOrderCreated drives the reservation decision and always answers with an
// outcome event. A failure inside the decision path becomes a StockRejected
// with the failure's message, so the orders side never waits forever on a
// PENDING order.
func (h EventsHandler) OnOrderCreated(ctx context.Context, event *entities.OrderCreated_v1) error {
	logger := log.FromContext(ctx).WithField("order_id", event.OrderID)
	logger.Info("Received OrderCreated event")

	decision, err := h.svc.ReserveOrder(ctx, event.OrderID, event.Lines)
	if err != nil {
		logger.WithError(err).Error("Error processing OrderCreated event")
		h.sagaMetrics.ReservationDecided("error")
		return h.publishRejected(ctx, event, "Error processing order: "+err.Error())
	}

	if !decision.Reserved {
		h.sagaMetrics.ReservationDecided("rejected")
		return h.publishRejected(ctx, event, decision.Reason)
	}

	h.sagaMetrics.ReservationDecided("reserved")
	h.sagaMetrics.EventPublished("StockReserved_v1")

	return h.eventBus.Publish(ctx, entities.StockReserved_v1{
		Header:     entities.NewEventHeader(event.Header.CorrelationID),
		OrderID:    event.OrderID,
		ReservedAt: time.Now().UTC(),
	})
}

func (h EventsHandler) publishRejected(ctx context.Context, event *entities.OrderCreated_v1, reason string) error {
	h.sagaMetrics.EventPublished("StockRejected_v1")

	return h.eventBus.Publish(ctx, entities.StockRejected_v1{
		Header:     entities.NewEventHeader(event.Header.CorrelationID),
		OrderID:    event.OrderID,
		Reason:     reason,
		RejectedAt: time.Now().UTC(),
	})
}
