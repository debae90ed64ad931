package router

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/adapter/api/handler"
	"dentmarket/internal/adapter/api/middleware"
)

func SetupReviewRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	reviewHandler := handler.GetReviewHandler()

	e.GET("/api/reviews/:productId", reviewHandler.ListReviews)
	e.POST("/api/reviews/:productId", reviewHandler.CreateReview, authMiddleware.Authenticate)
}
