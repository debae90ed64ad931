package router

import (
	"github.com/labstack/echo/v4"

	"dentmarket/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	roleMiddleware *middleware.RoleMiddleware,
	subscriptionMiddleware *middleware.SubscriptionMiddleware,
) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware, roleMiddleware)
	SetupProductRouter(e, authMiddleware, roleMiddleware, subscriptionMiddleware)
	SetupOrderRouter(e, authMiddleware, roleMiddleware)
	SetupMessageRouter(e, authMiddleware)
	SetupUploadRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
