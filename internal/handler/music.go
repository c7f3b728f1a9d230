package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/repository"
)

// MusicHandler implements the music catalog endpoints. Reads are open
// to every authenticated user; mutations belong to the artist role and
// additionally pass the repository's ownership check, so one artist can
// never touch another artist's entries.
type MusicHandler struct {
	Music *repository.MusicRepo
}

func NewMusicHandler(m *repository.MusicRepo) *MusicHandler {
	if m == nil {
		panic("nil repository passed to NewMusicHandler")
	}
	return &MusicHandler{Music: m}
}

type musicReq struct {
	Title     string `json:"title" validate:"required,min=1"`
	AlbumName string `json:"album_name" validate:"required,min=1"`
	Genre     string `json:"genre" validate:"required,min=1"`
}

// Create handles POST /v1/music: a new entry under the acting artist's
// own profile.
func (h *MusicHandler) Create(c echo.Context) error {
	actorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req musicReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Music.Create(ctx, actorID, req.Title, req.AlbumName, req.Genre)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist profile not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create music failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "music created successfully", "data": detail})
}

// List handles GET /v1/music with ?page=&size=&search=.
func (h *MusicHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	search := c.QueryParam("search")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, total, err := h.Music.List(ctx, page, size, search)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch music"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "music fetched successfully",
		"data":       entries,
		"pagination": paginate(total, page, size),
	})
}

// ListByArtist handles GET /v1/music/byArtist/:id: one artist's entries.
func (h *MusicHandler) ListByArtist(c echo.Context) error {
	artistID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || artistID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	page, size := pageParams(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, total, err := h.Music.ListByArtist(ctx, artistID, page, size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch music"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "music fetched successfully",
		"data":       entries,
		"pagination": paginate(total, page, size),
	})
}

// Update handles PATCH /v1/music/:id. A role-valid artist acting on an
// entry they do not own receives 403 with the ownership message,
// distinct from the role gate's response.
func (h *MusicHandler) Update(c echo.Context) error {
	musicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || musicID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	actorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req musicReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Music.Update(ctx, musicID, actorID, req.Title, req.AlbumName, req.Genre)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMusicNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "music not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not own this music"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update music failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "music updated successfully", "data": detail})
}

// Delete handles DELETE /v1/music/:id with the same ownership rule as
// Update.
func (h *MusicHandler) Delete(c echo.Context) error {
	musicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || musicID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	actorID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Music.Delete(ctx, musicID, actorID); err != nil {
		switch {
		case errors.Is(err, repository.ErrMusicNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "music not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "you do not own this music"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete music failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
