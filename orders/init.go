package orders

import (
	"shop/db"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/labstack/echo/v4"
)

func Initialize(
	e *echo.Echo,
	eventProcessor *cqrs.EventProcessor,
	orderRepo db.IOrderRepository,
) {
	svc := NewService(orderRepo)
	handler := NewEventsHandler(orderRepo)

	err := eventProcessor.AddHandlers(
		cqrs.NewEventHandler(
			"OnStockReserved",
			handler.OnStockReserved,
		),
		cqrs.NewEventHandler(
			"OnStockRejected",
			handler.OnStockRejected,
		),
	)
	if err != nil {
		panic(err)
	}

	mountHttpHandlers(e, svc)
}
