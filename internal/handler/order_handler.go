package handler

import (
	"net/http"
	"strconv"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderUsecase *usecase.OrderUsecase
}

// DI
func NewOrderHandler(orderUsecase *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

type orderLineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type placeOrderRequest struct {
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	PaymentMethod   string             `json:"payment_method"`
	Items           []orderLineRequest `json:"items"`
}

// POST /api/orders
// ログイン済みならcustomer_idを紐付け、未ログインはゲスト注文として受ける。
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	var customerID *int64
	if id, ok := c.Get(middleware.CtxUserIDKey).(int64); ok && id > 0 {
		customerID = &id
	}

	//冪等キーはヘッダ優先。無ければサーバー側で採番する。
	key := c.Request().Header.Get("X-Idempotency-Key")
	if key == "" {
		key = uuid.NewString()
	}

	items := make([]usecase.OrderLineInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderLineInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	out, err := h.orderUsecase.PlaceOrder(c.Request().Context(), customerID, usecase.PlaceOrderInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		PaymentMethod:   req.PaymentMethod,
		Items:           items,
		IdempotencyKey:  key,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":           "Order placed successfully",
		"order_id":          out.OrderID,
		"payment_status":    out.PaymentStatus,
		"requires_approval": out.RequiresApproval,
		"total_amount":      out.TotalAmount,
	})
}

// GET /api/customers/orders
func (h *OrderHandler) ListMyOrders(c echo.Context) error {
	customerID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orders, err := h.orderUsecase.ListMyOrders(c.Request().Context(), customerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GET /api/customers/orders/:id
func (h *OrderHandler) GetMyOrderDetail(c echo.Context) error {
	customerID, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	order, err := h.orderUsecase.GetMyOrderDetail(c.Request().Context(), customerID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}
