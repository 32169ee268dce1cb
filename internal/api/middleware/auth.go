package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/apas/pharmacy-system/internal/core/domain"
)

// tokenClaims mirrors the claims the identity service signs at login.
type tokenClaims struct {
	Username   string `json:"username"`
	Role       string `json:"role"`
	Identifier string `json:"identifier"`
	jwt.RegisteredClaims
}

// Auth validates the JWT and injects username, role and identifier into the
// context. Tokens without a known role, a username and a well-formed
// identifier are rejected.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			var claims tokenClaims
			tkn, err := jwt.ParseWithClaims(parts[1], &claims, func(*jwt.Token) (any, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			// patient scoping compares against the identifier claim
			if !domain.Role(claims.Role).Valid() || claims.Username == "" || !domain.IsIdentifier(claims.Identifier) {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			c.Set("username", claims.Username)
			c.Set("role", claims.Role)
			c.Set("identifier", claims.Identifier)

			return next(c)
		}
	}
}
