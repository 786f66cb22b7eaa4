package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"

	"github.com/labstack/echo/v4"
)

// ハンドラ一式。main.goで組み立てて渡す。
type Handlers struct {
	Auth           *handler.AuthHandler
	Product        *handler.ProductHandler
	Order          *handler.OrderHandler
	AdminProduct   *handler.AdminProductHandler
	AdminOrder     *handler.AdminOrderHandler
	AdminDashboard *handler.AdminDashboardHandler
}

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	api := e.Group("/api")

	//死活監視
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	//公開カタログ
	api.GET("/products", h.Product.List)
	api.GET("/products/:id", h.Product.Detail)
	api.GET("/categories", h.Product.Categories)

	//認証
	api.POST("/customers/register", h.Auth.RegisterCustomer)
	api.POST("/customers/login", h.Auth.LoginCustomer)
	api.POST("/admin/login", h.Auth.LoginAdmin)

	//注文（ゲストも可。トークンがあれば顧客に紐付く）
	api.POST("/orders", h.Order.PlaceOrder, middleware.OptionalAuthJWT(cfg))

	//顧客の注文履歴（要ログイン）
	customers := api.Group("/customers", middleware.AuthJWT(cfg))
	customers.GET("/orders", h.Order.ListMyOrders)
	customers.GET("/orders/:id", h.Order.GetMyOrderDetail)

	//管理画面（要adminロール）
	admin := api.Group("/admin", middleware.AuthJWT(cfg), middleware.AdminRoleGuard())
	admin.GET("/dashboard", h.AdminDashboard.Get)

	admin.GET("/products", h.AdminProduct.List)
	admin.POST("/products", h.AdminProduct.Create)
	admin.PUT("/products/deactivate-all", h.AdminProduct.DeactivateAll)
	admin.PUT("/products/:id", h.AdminProduct.Update)
	admin.DELETE("/products/:id", h.AdminProduct.Delete)

	admin.GET("/orders", h.AdminOrder.List)
	admin.GET("/orders/:id", h.AdminOrder.Detail)
	admin.PUT("/orders/:id/status", h.AdminOrder.UpdateOrderStatus)
	admin.PUT("/orders/:id/payment", h.AdminOrder.UpdatePaymentStatus)
}
