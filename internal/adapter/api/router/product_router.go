package router

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/adapter/api/handler"
	"dentmarket/internal/adapter/api/middleware"
)

func SetupProductRouter(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	roleMiddleware *middleware.RoleMiddleware,
	subscriptionMiddleware *middleware.SubscriptionMiddleware,
) {
	productHandler := handler.GetProductHandler()

	e.GET("/api/produits", productHandler.ListProducts)
	e.GET("/api/produits/:id", productHandler.GetProduct)

	supplier := e.Group("/api/produits")
	supplier.Use(authMiddleware.Authenticate, roleMiddleware.SupplierOnly)
	supplier.GET("/fournisseur/mes-produits", productHandler.ListMyProducts)
	supplier.POST("", productHandler.CreateProduct, subscriptionMiddleware.ActiveSubscription)
	supplier.PUT("/:id", productHandler.UpdateProduct, subscriptionMiddleware.ActiveSubscription)
	supplier.DELETE("/:id", productHandler.DeleteProduct)
}
