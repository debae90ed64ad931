package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dentmarket/internal/domain/entity"
)

type RoleMiddleware struct{}

func NewRoleMiddleware() *RoleMiddleware {
	return &RoleMiddleware{}
}

// Require passes only callers whose token role is one of the given roles.
func (m *RoleMiddleware) Require(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient privileges")
		}
	}
}

func (m *RoleMiddleware) SupplierOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Require(entity.RoleSupplier, entity.RoleAdmin)(next)
}

func (m *RoleMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return m.Require(entity.RoleAdmin)(next)
}
