package orders

import (
	"errors"
	"net/http"
	"shop/db"
	"shop/entities"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

type OrderLineDto struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type ShippingAddressDto struct {
	Country    string `json:"country"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postalCode"`
	Zip        string `json:"zip"`
}

type PostOrderRequest struct {
	OrderID          uuid.UUID          `json:"orderId"`
	CustomerID       string             `json:"customerId"`
	Lines            []OrderLineDto     `json:"lines"`
	ShippingAddress  ShippingAddressDto `json:"shippingAddress"`
	PaymentReference string             `json:"paymentReference"`
}

type OrderResponse struct {
	OrderID          uuid.UUID            `json:"orderId"`
	CustomerID       string               `json:"customerId"`
	Status           entities.OrderStatus `json:"status"`
	Message          string               `json:"message"`
	Reason           string               `json:"reason,omitempty"`
	Lines            []OrderLineDto       `json:"lines"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

func mountHttpHandlers(e *echo.Echo, svc Service) {
	e.POST("/orders", func(c echo.Context) error {
		request := PostOrderRequest{}
		if err := c.Bind(&request); err != nil {
			return err
		}
		if request.CustomerID == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "customerId must be provided")
		}
		if len(request.Lines) == 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "order must have at least one line")
		}
		for _, line := range request.Lines {
			if line.ProductID == uuid.Nil {
				return echo.NewHTTPError(http.StatusBadRequest, "productId must be provided for every line")
			}
			if line.Quantity <= 0 {
				return echo.NewHTTPError(http.StatusBadRequest, "quantity must be greater than 0")
			}
		}

		order, err := svc.CreateOrder(c.Request().Context(), entities.Order{
			OrderID:    request.OrderID,
			CustomerID: request.CustomerID,
			Lines: lo.Map(request.Lines, func(line OrderLineDto, _ int) entities.OrderLine {
				return entities.OrderLine{
					ProductID: line.ProductID,
					Quantity:  line.Quantity,
				}
			}),
			ShippingAddress: entities.ShippingAddress{
				Country:    request.ShippingAddress.Country,
				City:       request.ShippingAddress.City,
				Street:     request.ShippingAddress.Street,
				PostalCode: request.ShippingAddress.PostalCode,
				Zip:        request.ShippingAddress.Zip,
			},
			PaymentReference: request.PaymentReference,
		})
		if errors.Is(err, db.ErrOrderAlreadyExists) {
			return echo.NewHTTPError(http.StatusConflict, "order already exists")
		}
		if err != nil {
			return err
		}

		return c.JSON(http.StatusCreated, mapToOrderResponse(order))
	})

	e.GET("/orders/:order_id", func(c echo.Context) error {
		orderID, err := uuid.Parse(c.Param("order_id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid order ID format")
		}

		order, err := svc.GetOrder(c.Request().Context(), orderID)
		if errors.Is(err, db.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, mapToOrderResponse(order))
	})
}

func mapToOrderResponse(order entities.Order) OrderResponse {
	return OrderResponse{
		OrderID:    order.OrderID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		Message:    order.Message,
		Reason:     order.Reason,
		Lines: lo.Map(order.Lines, func(line entities.OrderLine, _ int) OrderLineDto {
			return OrderLineDto{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			}
		}),
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}
