package router

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/adapter/api/handler"
	"dentmarket/internal/adapter/api/middleware"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	auth := e.Group("/api/auth")
	auth.POST("/inscription", authHandler.Register)
	auth.POST("/connexion", authHandler.Login)
	auth.GET("/profil", authHandler.Profile, authMiddleware.Authenticate)
}
