package inventory

import (
	"shop/db"
	"shop/pkg/metrics"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/labstack/echo/v4"
)

func Initialize(
	e *echo.Echo,
	eventBus *cqrs.EventBus,
	eventProcessor *cqrs.EventProcessor,
	stockRepo db.IStockRepository,
	sagaMetrics *metrics.SagaMetrics,
) {
	svc := NewService(stockRepo)
	handler := NewEventsHandler(svc, eventBus, sagaMetrics)

	err := eventProcessor.AddHandlers(
		cqrs.NewEventHandler(
			"OnOrderCreated",
			handler.OnOrderCreated,
		),
	)
	if err != nil {
		panic(err)
	}

	mountHttpHandlers(e, stockRepo)
}
