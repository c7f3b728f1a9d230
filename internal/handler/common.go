package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/middleware"
	"github.com/iliyamo/artist-management/internal/model"
)

// validate is the shared request validator. DTOs declare their rules
// with struct tags; handlers call validate.Struct after binding.
var validate = validator.New()

// getUserID extracts the authenticated user id placed in the context by
// the auth middleware. An error here means the route was registered
// without the middleware.
func getUserID(c echo.Context) (uint64, error) {
	id, ok := c.Get(middleware.CtxUserID).(uint64)
	if !ok || id == 0 {
		return 0, errors.New("no authenticated user in context")
	}
	return id, nil
}

// getRole extracts the authenticated role snapshot from the context.
func getRole(c echo.Context) (model.Role, error) {
	role, ok := c.Get(middleware.CtxRole).(model.Role)
	if !ok || !role.Valid() {
		return "", errors.New("no authenticated role in context")
	}
	return role, nil
}

// pageParams reads ?page= and ?size= with the defaults the dashboard
// frontend expects.
func pageParams(c echo.Context) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.QueryParam("size"))
	if size < 1 || size > 100 {
		size = 10
	}
	return page, size
}

// pagination is the metadata block attached to every list response.
type pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
	Pages int `json:"pages"`
}

func paginate(total, page, size int) pagination {
	pages := 0
	if total > 0 {
		pages = (total + size - 1) / size
	}
	return pagination{Total: total, Page: page, Size: size, Pages: pages}
}
