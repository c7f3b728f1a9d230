package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/artist-management/internal/config"
	"github.com/iliyamo/artist-management/internal/middleware"
	"github.com/iliyamo/artist-management/internal/model"
	"github.com/iliyamo/artist-management/internal/repository"
	"github.com/iliyamo/artist-management/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		AccessSecret:   "access-secret",
		RefreshSecret:  "refresh-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 30,
		BcryptCost:     4,
	}
}

func newAuthHandlerMock(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthHandler(testConfig(), repository.NewUserRepo(db)), mock
}

func userRow(id uint64, role string, passwordHash string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(
		[]string{"id", "first_name", "last_name", "email", "password", "role", "created_at", "updated_at"}).
		AddRow(id, "Ada", "Lovelace", "ada@example.com", passwordHash, role, now, now)
}

func sessionCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := http.Response{Header: rec.Header()}
	for _, ck := range res.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func TestLoginIssuesCookiePair(t *testing.T) {
	h, mock := newAuthHandlerMock(t)

	hash, err := utils.HashPassword("pass123", 4)
	require.NoError(t, err)
	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("ada@example.com").
		WillReturnRows(userRow(7, "artist_manager", hash))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"email":"ada@example.com","password":"pass123"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	access := sessionCookie(rec, middleware.AccessCookie)
	refresh := sessionCookie(rec, middleware.RefreshCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)

	claims, err := utils.ParseAccessToken("access-secret", access.Value)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, model.RoleArtistManager, claims.Role)

	uid, err := utils.ParseRefreshToken("refresh-secret", refresh.Value)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock := newAuthHandlerMock(t)

	hash, err := utils.HashPassword("pass123", 4)
	require.NoError(t, err)
	mock.ExpectQuery("FROM users WHERE email").
		WillReturnRows(userRow(7, "artist_manager", hash))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"email":"ada@example.com","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(rec, middleware.AccessCookie))
}

// The refreshed access token carries the role currently stored, not
// the role at login time. Demoting a manager takes effect on the next
// refresh.
func TestRefreshReReadsRole(t *testing.T) {
	h, mock := newAuthHandlerMock(t)

	refresh, err := utils.NewRefreshToken("refresh-secret", 7, 30)
	require.NoError(t, err)

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs(uint64(7)).
		WillReturnRows(userRow(7, "artist", "$2a$04$hash"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshCookie, Value: refresh.Token})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Refresh(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	access := sessionCookie(rec, middleware.AccessCookie)
	require.NotNil(t, access)
	claims, err := utils.ParseAccessToken("access-secret", access.Value)
	require.NoError(t, err)
	assert.Equal(t, model.RoleArtist, claims.Role)

	// The refresh token is not rotated.
	assert.Nil(t, sessionCookie(rec, middleware.RefreshCookie))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// An access token in the refresh slot must not mint new sessions.
func TestRefreshRejectsAccessToken(t *testing.T) {
	h, _ := newAuthHandlerMock(t)

	access, err := utils.NewAccessToken("access-secret", 7, model.RoleArtist, 15)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshCookie, Value: access.Token})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Refresh(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	h, _ := newAuthHandlerMock(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register",
		strings.NewReader(`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"pass123","role":"root"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Register(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Logout without a session is still a 200 and clears both cookies.
func TestLogoutIdempotent(t *testing.T) {
	h, _ := newAuthHandlerMock(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Logout(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	access := sessionCookie(rec, middleware.AccessCookie)
	require.NotNil(t, access)
	assert.Empty(t, access.Value)
	assert.True(t, access.Expires.Before(time.Now()))
}
