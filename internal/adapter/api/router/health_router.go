package router

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/adapter/api/handler"
)

func SetupHealthRouter(e *echo.Echo) {
	healthHandler := handler.GetHealthHandler()

	e.GET("/", healthHandler.Banner)
	e.GET("/health", healthHandler.CheckHealth)
}
