package router

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/adapter/api/handler"
	"dentmarket/internal/adapter/api/middleware"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, roleMiddleware *middleware.RoleMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/api/users")
	e.GET("/api/users/fournisseur/:id", userHandler.PublicSupplier)

	users.Use(authMiddleware.Authenticate)
	users.GET("/profil", userHandler.GetProfile)
	users.PUT("/profil", userHandler.UpdateProfile)
	users.PUT("/mot-de-passe", userHandler.ChangePassword)
	users.GET("/dashboard", userHandler.Dashboard, roleMiddleware.SupplierOnly)
	users.POST("/abonnement/activer", userHandler.ActivateSubscription, roleMiddleware.SupplierOnly)
	users.DELETE("/compte", userHandler.CloseAccount)
}
