package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/apas/pharmacy-system/internal/core/domain"
)

// claims is the caller identity injected by the Auth middleware.
type claims struct {
	Username   string
	Role       domain.Role
	Identifier string
}

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: role must be a known
// role (presence proves the middleware ran).
func ctxClaims(c echo.Context) (claims, error) {
	role, _ := c.Get("role").(string)
	if !domain.Role(role).Valid() {
		return claims{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	username, _ := c.Get("username").(string)
	identifier, _ := c.Get("identifier").(string)
	return claims{Username: username, Role: domain.Role(role), Identifier: identifier}, nil
}

// canReadPatient reports whether the caller may read data scoped to the given
// patient identifier. Patients only see their own records.
func (cl claims) canReadPatient(identifier string) bool {
	if cl.Role == domain.RolePatient {
		return cl.Identifier == identifier
	}
	return true
}
