package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dentmarket/internal/domain/entity"
	"dentmarket/internal/domain/repository"
)

type SubscriptionMiddleware struct {
	userRepo  repository.UserRepository
	trialDays int
}

func NewSubscriptionMiddleware(userRepo repository.UserRepository, trialDays int) *SubscriptionMiddleware {
	return &SubscriptionMiddleware{
		userRepo:  userRepo,
		trialDays: trialDays,
	}
}

// ActiveSubscription blocks suppliers whose trial has expired and who have no
// active paid subscription. Admins pass through.
func (m *SubscriptionMiddleware) ActiveSubscription(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		if role, _ := c.Get("role").(string); role == entity.RoleAdmin {
			return next(c)
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify subscription")
		}

		if !user.CanSell(time.Now(), m.trialDays) {
			return echo.NewHTTPError(http.StatusForbidden, "Your trial has expired. Subscribe to keep selling.")
		}

		return next(c)
	}
}
