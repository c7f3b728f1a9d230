package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/model"
)

// RequireRole returns a middleware enforcing that the authenticated
// caller's role is in the given allow-list. An empty list admits any
// authenticated identity. It must run after Auth: the order is fixed,
// authenticate then authorize, so a missing identity here is a server
// wiring mistake and is answered with 401 rather than 403.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(model.Role)
			if !ok || !role.Valid() {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access denied"})
			}
			if len(allowed) > 0 && !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
