package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/model"
	"github.com/iliyamo/artist-management/internal/utils"
)

// Context keys under which the authenticated identity is stored. The
// values are typed: CtxUserID holds a uint64, CtxRole a model.Role.
const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

// AccessCookie and RefreshCookie are the names of the http-only session
// cookies. They are shared with the auth handler which issues them.
const (
	AccessCookie  = "accessToken"
	RefreshCookie = "refreshToken"
)

// UserLookup resolves a user id to its stored record. The auth
// middleware uses it to reject tokens whose subject no longer exists:
// deleting an account is the only server-side revocation mechanism, so
// the existence check has to run on every authenticated request.
type UserLookup interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// Auth returns an Echo middleware that establishes the caller's
// identity from the accessToken cookie. The token must carry a valid
// signature, be unexpired and reference an existing user; any failure
// yields 401 without distinguishing the cause to the client. On success
// the verified user id and role snapshot are stored in the context for
// RequireRole and the handlers.
func Auth(secret string, users UserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AccessCookie)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "access denied"})
			}
			claims, err := utils.ParseAccessToken(secret, cookie.Value)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			// Bound the existence lookup; a slow database must not hold
			// the request open indefinitely.
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			if _, err := users.GetByID(ctx, claims.UserID); err != nil {
				if err == sql.ErrNoRows {
					return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "auth lookup failed"})
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}
