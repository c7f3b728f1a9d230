package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/handler"
	"github.com/iliyamo/artist-management/internal/middleware"
	"github.com/iliyamo/artist-management/internal/model"
)

// RegisterMusic registers the music catalog. Any authenticated user may
// browse; only artists mutate, and the ownership check inside the
// repository scopes each mutation to the artist's own entries.
func RegisterMusic(e *echo.Echo, h *handler.MusicHandler, authMW echo.MiddlewareFunc, cacheMW echo.MiddlewareFunc) {
	read := e.Group("/v1/music", authMW)
	if cacheMW != nil {
		read.GET("", h.List, cacheMW)
	} else {
		read.GET("", h.List)
	}
	read.GET("/byArtist/:id", h.ListByArtist)

	artist := e.Group(
		"/v1/music",
		authMW,
		middleware.RequireRole(model.RoleArtist),
	)
	artist.POST("", h.Create)
	artist.PATCH("/:id", h.Update)
	artist.DELETE("/:id", h.Delete)
}
