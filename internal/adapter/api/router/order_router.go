package router

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/adapter/api/handler"
	"dentmarket/internal/adapter/api/middleware"
	"dentmarket/internal/domain/entity"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := e.Group("/api/commandes")
	orders.Use(authMiddleware.Authenticate)

	orders.POST("", orderHandler.CreateOrder, roleMiddleware.Require(entity.RoleBuyer, entity.RoleAdmin))
	orders.GET("", orderHandler.ListOrders)
	orders.GET("/:id", orderHandler.GetOrder)
	orders.PUT("/:id/statut", orderHandler.UpdateStatus, roleMiddleware.Require(entity.RoleSupplier, entity.RoleAdmin))
	orders.POST("/:id/evaluation", orderHandler.RateOrder)
	orders.DELETE("/:id", orderHandler.CancelOrder)
}
