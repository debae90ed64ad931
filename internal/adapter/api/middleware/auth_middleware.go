package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"dentmarket/internal/infrastructure/auth"
)

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
}

func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
	}
}

// Authenticate verifies the bearer token and stores the caller's id and role
// on the request context under "uid" and "role".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := m.jwtManager.Verify(parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", claims.UserID)
		c.Set("role", claims.Role)

		return next(c)
	}
}

// VerifyQueryToken authenticates via a "token" query parameter. Browsers
// cannot set headers on websocket upgrade requests.
func (m *AuthMiddleware) VerifyQueryToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Token is required")
		}

		claims, err := m.jwtManager.Verify(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		c.Set("uid", claims.UserID)
		c.Set("role", claims.Role)

		return next(c)
	}
}
