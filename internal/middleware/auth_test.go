package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/artist-management/internal/model"
	"github.com/iliyamo/artist-management/internal/utils"
)

// stubLookup serves a fixed set of users. Missing ids return
// sql.ErrNoRows the way the real repository does.
type stubLookup struct {
	users map[uint64]model.User
	err   error
}

func (s *stubLookup) GetByID(_ context.Context, id uint64) (model.User, error) {
	if s.err != nil {
		return model.User{}, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return model.User{}, sql.ErrNoRows
	}
	return u, nil
}

const testSecret = "test-access-secret"

func runAuth(t *testing.T, lookup UserLookup, cookie *http.Cookie) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Auth(testSecret, lookup)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, called
}

func TestAuthMissingCookie(t *testing.T) {
	rec, called := runAuth(t, &stubLookup{}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthGarbageToken(t *testing.T) {
	rec, called := runAuth(t, &stubLookup{}, &http.Cookie{Name: AccessCookie, Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 1, model.RoleArtist, -5)
	require.NoError(t, err)

	rec, called := runAuth(t,
		&stubLookup{users: map[uint64]model.User{1: {ID: 1}}},
		&http.Cookie{Name: AccessCookie, Value: tok.Token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

// A syntactically valid token whose subject was deleted is rejected:
// account deletion is the revocation mechanism.
func TestAuthDeletedUser(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 99, model.RoleArtist, 15)
	require.NoError(t, err)

	rec, called := runAuth(t, &stubLookup{users: map[uint64]model.User{}},
		&http.Cookie{Name: AccessCookie, Value: tok.Token})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthLookupFailure(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 1, model.RoleArtist, 15)
	require.NoError(t, err)

	rec, called := runAuth(t, &stubLookup{err: context.DeadlineExceeded},
		&http.Cookie{Name: AccessCookie, Value: tok.Token})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, called)
}

func TestAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, model.RoleArtistManager, 15)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: tok.Token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	lookup := &stubLookup{users: map[uint64]model.User{7: {ID: 7, Role: model.RoleArtistManager}}}
	h := Auth(testSecret, lookup)(func(c echo.Context) error {
		assert.Equal(t, uint64(7), c.Get(CtxUserID))
		assert.Equal(t, model.RoleArtistManager, c.Get(CtxRole))
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
