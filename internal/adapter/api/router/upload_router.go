package router

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/adapter/api/handler"
	"dentmarket/internal/adapter/api/middleware"
)

func SetupUploadRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	uploadHandler := handler.GetUploadHandler()

	upload := e.Group("/api/upload")
	upload.Use(authMiddleware.Authenticate)

	upload.POST("/image", uploadHandler.UploadImage)
	upload.POST("/images", uploadHandler.UploadImages)
}
