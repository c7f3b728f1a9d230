package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/artist-management/internal/middleware"
	"github.com/iliyamo/artist-management/internal/model"
)

func ctxWithQuery(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		query    string
		page     int
		size     int
	}{
		{"", 1, 10},
		{"page=3&size=25", 3, 25},
		{"page=0&size=0", 1, 10},
		{"page=-2&size=1000", 1, 10},
		{"page=abc&size=xyz", 1, 10},
	}
	for _, tc := range cases {
		page, size := pageParams(ctxWithQuery(tc.query))
		assert.Equal(t, tc.page, page, tc.query)
		assert.Equal(t, tc.size, size, tc.query)
	}
}

func TestPaginate(t *testing.T) {
	assert.Equal(t, pagination{Total: 0, Page: 1, Size: 10, Pages: 0}, paginate(0, 1, 10))
	assert.Equal(t, pagination{Total: 10, Page: 1, Size: 10, Pages: 1}, paginate(10, 1, 10))
	assert.Equal(t, pagination{Total: 11, Page: 2, Size: 10, Pages: 2}, paginate(11, 2, 10))
}

func TestContextIdentityHelpers(t *testing.T) {
	c := ctxWithQuery("")
	_, err := getUserID(c)
	assert.Error(t, err)
	_, err = getRole(c)
	assert.Error(t, err)

	c.Set(middleware.CtxUserID, uint64(7))
	c.Set(middleware.CtxRole, model.RoleArtist)

	uid, err := getUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uid)

	role, err := getRole(c)
	require.NoError(t, err)
	assert.Equal(t, model.RoleArtist, role)
}
