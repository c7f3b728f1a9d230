package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/handler"
	"github.com/iliyamo/artist-management/internal/middleware"
	"github.com/iliyamo/artist-management/internal/model"
)

// RegisterArtists registers the artist catalog. Reads are open to any
// authenticated user; every mutation plus the CSV surface requires the
// artist_manager role. cacheMW, when non-nil, caches the list reads.
func RegisterArtists(e *echo.Echo, h *handler.ArtistHandler, csv *handler.CSVHandler, authMW echo.MiddlewareFunc, cacheMW echo.MiddlewareFunc) {
	read := e.Group("/v1/artists", authMW)
	if cacheMW != nil {
		read.GET("", h.List, cacheMW)
	} else {
		read.GET("", h.List)
	}
	read.GET("/manager", h.ListByManager)
	read.GET("/byUser/:id", h.GetByUser)
	read.GET("/:id", h.Get)

	mgr := e.Group(
		"/v1",
		authMW,
		middleware.RequireRole(model.RoleArtistManager),
	)
	mgr.POST("/artists", h.Create)
	mgr.PATCH("/artists/:id", h.Update)
	mgr.DELETE("/artists/:id", h.Delete)
	mgr.GET("/artists/export", csv.Export)
	mgr.POST("/artists/import", csv.Import)
	mgr.POST("/upload", csv.Upload)
}
