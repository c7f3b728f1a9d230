package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/repository"
)

// UserHandler serves the read-only user listing consumed by the admin
// pages of the dashboard.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler {
	if u == nil {
		panic("nil repository passed to NewUserHandler")
	}
	return &UserHandler{Users: u}
}

// List handles GET /v1/users with ?page=&size=&search=.
func (h *UserHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	search := c.QueryParam("search")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, total, err := h.Users.List(ctx, page, size, search)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch users"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "users fetched successfully",
		"data":       users,
		"pagination": paginate(total, page, size),
	})
}

// Get handles GET /v1/users/:id.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch user"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user fetched successfully", "data": toUserPart(u)})
}
