package handler

import (
	"net/http"
	"strconv"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type SuccessResponse struct {
	Message string `json:"message"`
}

type AdminProductHandler struct {
	adminProductUsecase *usecase.AdminProductUsecase
}

// DI
func NewAdminProductHandler(adminProductUsecase *usecase.AdminProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{adminProductUsecase: adminProductUsecase}
}

type productRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	StockQuantity int64           `json:"stock_quantity"`
	ImageURL      string          `json:"image_url"`
	IsActive      *bool           `json:"is_active"`
}

// GET /api/admin/products
func (h *AdminProductHandler) List(c echo.Context) error {
	products, err := h.adminProductUsecase.List(c.Request().Context(), adminIDFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

// POST /api/admin/products
func (h *AdminProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	created, err := h.adminProductUsecase.Create(c.Request().Context(), adminIDFrom(c), usecase.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "Product added successfully",
		"product_id": created.ID,
	})
}

// PUT /api/admin/products/:id
func (h *AdminProductHandler) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	err = h.adminProductUsecase.Update(c.Request().Context(), adminIDFrom(c), id, usecase.ProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Product updated successfully"})
}

// DELETE /api/admin/products/:id
func (h *AdminProductHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.adminProductUsecase.Delete(c.Request().Context(), adminIDFrom(c), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Product deleted successfully"})
}

// PUT /api/admin/products/deactivate-all
func (h *AdminProductHandler) DeactivateAll(c echo.Context) error {
	n, err := h.adminProductUsecase.DeactivateAll(c.Request().Context(), adminIDFrom(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "All products deactivated",
		"count":   n,
	})
}

// JWTミドルウェアが詰めたadmin IDを取り出す
func adminIDFrom(c echo.Context) int64 {
	id, ok := c.Get(middleware.CtxUserIDKey).(int64)
	if !ok {
		return 0
	}
	return id
}
