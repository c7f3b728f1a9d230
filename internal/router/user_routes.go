package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/handler"
	"github.com/iliyamo/artist-management/internal/middleware"
	"github.com/iliyamo/artist-management/internal/model"
)

// RegisterUsers registers the user directory under /v1/users. The
// directory is for the back office, so only super admins and artist
// managers pass the role gate.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, authMW echo.MiddlewareFunc) {
	g := e.Group(
		"/v1/users",
		authMW,
		middleware.RequireRole(model.RoleSuperAdmin, model.RoleArtistManager),
	)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}
