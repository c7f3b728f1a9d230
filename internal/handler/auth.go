package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/config"
	"github.com/iliyamo/artist-management/internal/middleware"
	"github.com/iliyamo/artist-management/internal/model"
	"github.com/iliyamo/artist-management/internal/repository"
	"github.com/iliyamo/artist-management/internal/utils"
)

// AuthHandler bundles dependencies for session endpoints. Tokens are
// minted by the pure helpers in utils; this handler owns only the
// credential checks and the cookie transport.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	FirstName string `json:"first_name" validate:"required,min=2"`
	LastName  string `json:"last_name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Role      string `json:"role" validate:"required"`
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userPart struct {
	ID        uint64     `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, Role: u.Role}
}

// setSessionCookie writes one http-only, same-site-lax session cookie.
// The refresh token must never be readable by page scripts, so both
// cookies share the same hardened attributes.
func (h *AuthHandler) setSessionCookie(c echo.Context, name, value string, exp time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires a session cookie on the client.
func (h *AuthHandler) clearSessionCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.Cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register creates a user account. The role must come from the closed
// set; the email is normalized to lowercase before storage.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	role, ok := model.ParseRole(req.Role)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.FirstName, req.LastName, req.Email, req.Password, role, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "user registered successfully", "user_id": uid})
}

// Login verifies credentials and issues the session cookie pair: a
// short-lived access token carrying the role snapshot and a long-lived
// refresh token carrying only the user id.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.AccessSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshSecret, u.ID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue refresh failed"})
	}

	h.setSessionCookie(c, middleware.AccessCookie, access.Token, access.Exp)
	h.setSessionCookie(c, middleware.RefreshCookie, refresh.Token, refresh.Exp)

	return c.JSON(http.StatusOK, echo.Map{"message": "login successful", "user": toUserPart(u)})
}

// Refresh exchanges a valid refresh cookie for a fresh access cookie.
// The role claim is deliberately re-read from the database rather than
// copied from any token: this is the one place where a role change made
// after login takes effect. The refresh token itself is not rotated.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(middleware.RefreshCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access denied"})
	}
	uid, err := utils.ParseRefreshToken(h.Cfg.RefreshSecret, cookie.Value)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.AccessSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	h.setSessionCookie(c, middleware.AccessCookie, access.Token, access.Exp)

	return c.JSON(http.StatusOK, echo.Map{"message": "token refreshed"})
}

// Logout clears both session cookies. It is idempotent: calling it
// without an active session is safe and still returns 200.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearSessionCookie(c, middleware.AccessCookie)
	h.clearSessionCookie(c, middleware.RefreshCookie)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me returns the authenticated user's public profile. The dashboard
// calls this on load; the password hash is never included.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access denied"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "dashboard data", "user": toUserPart(u)})
}
