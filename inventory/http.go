package inventory

import (
	"errors"
	"net/http"
	"shop/db"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type GetProductStockResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	AvailableStock int       `json:"availableStock"`
	ReservedStock  int       `json:"reservedStock"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type RestockRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

func mountHttpHandlers(e *echo.Echo, stockRepo db.IStockRepository) {
	e.GET("/products/:product_id/stock", func(c echo.Context) error {
		productID, err := uuid.Parse(c.Param("product_id"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid product ID format")
		}

		stock, err := stockRepo.ByProductID(c.Request().Context(), productID)
		if errors.Is(err, db.ErrProductNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, GetProductStockResponse{
			ProductID:      stock.ProductID,
			AvailableStock: stock.AvailableStock,
			ReservedStock:  stock.ReservedStock,
			UpdatedAt:      stock.UpdatedAt,
		})
	})

	e.POST("/products-stock", func(c echo.Context) error {
		request := RestockRequest{}
		if err := c.Bind(&request); err != nil {
			return err
		}
		if request.ProductID == uuid.Nil {
			return echo.NewHTTPError(http.StatusBadRequest, "productId must be provided")
		}
		if request.Quantity <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "quantity must be greater than 0")
		}

		if err := stockRepo.Restock(c.Request().Context(), request.ProductID, request.Quantity); err != nil {
			return err
		}

		return c.NoContent(http.StatusCreated)
	})
}
