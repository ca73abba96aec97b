package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForHttpServer(t *testing.T) {
	t.Helper()

	require.EventuallyWithT(
		t,
		func(t *assert.CollectT) {
			resp, err := http.Get("http://localhost:8080/health")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()

			if assert.Less(t, resp.StatusCode, 300, "API not ready, http status: %d", resp.StatusCode) {
				return
			}
		},
		time.Second*10,
		time.Millisecond*50,
	)
}

func addProductToStock(t *testing.T, productID uuid.UUID, quantity int) {
	t.Helper()

	reqBody := map[string]any{
		"productId": productID,
		"quantity":  quantity,
	}

	resp, err := http.Post(
		"http://localhost:8080/products-stock",
		"application/json",
		bytes.NewReader(lo.Must(json.Marshal(reqBody))),
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func placeOrder(t *testing.T, products map[uuid.UUID]int) uuid.UUID {
	t.Helper()

	orderID := uuid.New()
	placeOrderWithID(t, orderID, products)

	return orderID
}

func placeOrderWithID(t *testing.T, orderID uuid.UUID, products map[uuid.UUID]int) {
	t.Helper()

	resp := postOrder(t, orderID, products)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func postOrder(t *testing.T, orderID uuid.UUID, products map[uuid.UUID]int) *http.Response {
	t.Helper()

	lines := []map[string]any{}
	for productID, quantity := range products {
		lines = append(lines, map[string]any{
			"productId": productID,
			"quantity":  quantity,
		})
	}

	reqBody := map[string]any{
		"orderId":    orderID,
		"customerId": "customer-1",
		"lines":      lines,
		"shippingAddress": map[string]any{
			"country":    "PL",
			"city":       "Warsaw",
			"street":     "Main St 1",
			"postalCode": "00-001",
			"zip":        "00-001",
		},
		"paymentReference": "payment-" + orderID.String(),
	}

	resp, err := http.Post(
		"http://localhost:8080/orders",
		"application/json",
		bytes.NewReader(lo.Must(json.Marshal(reqBody))),
	)
	require.NoError(t, err)

	return resp
}

type OrderResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Reason  string    `json:"reason"`
}

func getOrder(t assert.TestingT, orderID uuid.UUID) OrderResponse {
	resp, err := http.Get(
		"http://localhost:8080/orders/" + orderID.String(),
	)
	if !assert.NoError(t, err) {
		return OrderResponse{}
	}
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var orderResponse OrderResponse

	err = json.NewDecoder(resp.Body).Decode(&orderResponse)
	if !assert.NoError(t, err) {
		return OrderResponse{}
	}

	return orderResponse
}

type ProductStockResponse struct {
	ProductID      uuid.UUID `json:"productId"`
	AvailableStock int       `json:"availableStock"`
	ReservedStock  int       `json:"reservedStock"`
}

func getProductStock(t *testing.T, productID uuid.UUID) ProductStockResponse {
	t.Helper()

	resp, err := http.Get(
		"http://localhost:8080/products/" + productID.String() + "/stock",
	)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stockResponse ProductStockResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stockResponse))

	return stockResponse
}
