package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/artist-management/internal/model"
)

func runRole(t *testing.T, role any, allowed ...model.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set(CtxRole, role)
	}

	called := false
	h := RequireRole(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, called
}

func TestRequireRoleAllows(t *testing.T) {
	rec, called := runRole(t, model.RoleArtistManager, model.RoleSuperAdmin, model.RoleArtistManager)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireRoleForbids(t *testing.T) {
	rec, called := runRole(t, model.RoleArtist, model.RoleArtistManager)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

// No identity in context means Auth never ran; that is answered with
// 401, not 403.
func TestRequireRoleMissingIdentity(t *testing.T) {
	rec, called := runRole(t, nil, model.RoleArtistManager)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireRoleRejectsUnknownRole(t *testing.T) {
	rec, called := runRole(t, model.Role("root"), model.RoleArtistManager)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

// An empty allow-list is authentication-only.
func TestRequireRoleEmptyListAdmitsAny(t *testing.T) {
	rec, called := runRole(t, model.RoleArtist)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
