package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminDashboardHandler struct {
	dashboardUsecase *usecase.DashboardUsecase
}

// DI
func NewAdminDashboardHandler(dashboardUsecase *usecase.DashboardUsecase) *AdminDashboardHandler {
	return &AdminDashboardHandler{dashboardUsecase: dashboardUsecase}
}

// GET /api/admin/dashboard?period=all|week|month|year
func (h *AdminDashboardHandler) Get(c echo.Context) error {
	out, err := h.dashboardUsecase.Get(c.Request().Context(), c.QueryParam("period"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
