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

// ArtistHandler implements artist CRUD for artist managers plus the
// read endpoints available to every authenticated user. The create,
// update and delete paths all go through the transactional repository
// operations spanning the users and artists tables.
type ArtistHandler struct {
	Artists    *repository.ArtistRepo
	BcryptCost int
}

func NewArtistHandler(a *repository.ArtistRepo, bcryptCost int) *ArtistHandler {
	if a == nil {
		panic("nil repository passed to NewArtistHandler")
	}
	return &ArtistHandler{Artists: a, BcryptCost: bcryptCost}
}

// artistReq carries the artist payload for create and update. The dob
// travels as YYYY-MM-DD; gender uses the closed m/f/o code set.
type artistReq struct {
	FirstName        string `json:"first_name" validate:"required,min=2"`
	LastName         string `json:"last_name" validate:"required,min=2"`
	Email            string `json:"email" validate:"required,email"`
	DOB              string `json:"dob" validate:"required,datetime=2006-01-02"`
	Gender           string `json:"gender" validate:"required,oneof=m f o"`
	Address          string `json:"address" validate:"required,min=2"`
	FirstReleaseYear int    `json:"first_release_year" validate:"required,min=1900"`
	AlbumsReleased   int    `json:"no_of_albums_released" validate:"min=0"`
}

// toInput converts a validated request into the repository input. The
// dob format was already checked by the validator.
func (r artistReq) toInput() repository.ArtistInput {
	dob, _ := time.Parse("2006-01-02", r.DOB)
	return repository.ArtistInput{
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		Email:            r.Email,
		DOB:              dob,
		Gender:           r.Gender,
		Address:          r.Address,
		FirstReleaseYear: r.FirstReleaseYear,
		AlbumsReleased:   r.AlbumsReleased,
	}
}

// Create handles POST /v1/artists. The acting manager becomes the new
// artist's manager; the owning user account is provisioned in the same
// transaction with role artist and the placeholder credential.
func (h *ArtistHandler) Create(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req artistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	detail, err := h.Artists.Create(ctx, req.toInput(), managerID, h.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "user with this email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create artist failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "artist created successfully", "data": detail})
}

// List handles GET /v1/artists with ?page=&size=&search=.
func (h *ArtistHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	search := c.QueryParam("search")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	artists, total, err := h.Artists.List(ctx, page, size, search)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch artists"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "artists fetched successfully",
		"data":       artists,
		"pagination": paginate(total, page, size),
	})
}

// ListByManager handles GET /v1/artists/manager: the acting manager's
// own roster.
func (h *ArtistHandler) ListByManager(c echo.Context) error {
	managerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, size := pageParams(c)
	search := c.QueryParam("search")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	artists, total, err := h.Artists.ListByManager(ctx, managerID, page, size, search)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch artists"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "artists fetched successfully",
		"data":       artists,
		"pagination": paginate(total, page, size),
	})
}

// Get handles GET /v1/artists/:id.
func (h *ArtistHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch artist"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "artist fetched successfully", "data": detail})
}

// GetByUser handles GET /v1/artists/byUser/:id, resolving the profile
// owned by a user id. The artist dashboard uses it to find its own
// profile.
func (h *ArtistHandler) GetByUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	artist, err := h.Artists.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch artist"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "artist fetched successfully", "data": artist})
}

// Update handles PATCH /v1/artists/:id: one transaction over the users
// and artists rows.
func (h *ArtistHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req artistReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	detail, err := h.Artists.Update(ctx, id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrArtistNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		case errors.Is(err, repository.ErrEmailExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already taken"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update artist failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "artist updated successfully", "data": detail})
}

// Delete handles DELETE /v1/artists/:id: the cascading delete removing
// the profile and its owning user atomically.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	if err := h.Artists.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete artist failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
