package handler

import (
	"net/http"
	"strconv"
	"time"

	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	adminOrderUsecase *usecase.AdminOrderUsecase
}

// DI
func NewAdminOrderHandler(adminOrderUsecase *usecase.AdminOrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{adminOrderUsecase: adminOrderUsecase}
}

// GET /api/admin/orders
// page/limit/status/payment_status/payment_method/customer_id/from/to で絞り込み
func (h *AdminOrderHandler) List(c echo.Context) error {
	f := repo.AdminOrderListFilter{
		OrderStatus:   c.QueryParam("status"),
		PaymentStatus: c.QueryParam("payment_status"),
		PaymentMethod: c.QueryParam("payment_method"),
	}

	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Page = n
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	if v := c.QueryParam("customer_id"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid customer_id"})
		}
		f.CustomerID = &n
	}
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		f.From = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		f.To = &t
	}

	orders, err := h.adminOrderUsecase.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// GET /api/admin/orders/:id
func (h *AdminOrderHandler) Detail(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	order, err := h.adminOrderUsecase.Detail(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

type updateOrderStatusRequest struct {
	OrderStatus string `json:"order_status"`
}

// PUT /api/admin/orders/:id/status
func (h *AdminOrderHandler) UpdateOrderStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := h.adminOrderUsecase.UpdateOrderStatus(c.Request().Context(), adminIDFrom(c), orderID, req.OrderStatus); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Order status updated"})
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// PUT /api/admin/orders/:id/payment
func (h *AdminOrderHandler) UpdatePaymentStatus(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updatePaymentStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := h.adminOrderUsecase.UpdatePaymentStatus(c.Request().Context(), adminIDFrom(c), orderID, req.PaymentStatus); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Payment status updated"})
}
