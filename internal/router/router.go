// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/artist-management/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently that is only the health check used by load balancers and
// monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints. The unauthenticated
// operations live under /v1/auth; limiter, when non-nil, rate limits
// them (login and refresh are the abuse targets). The identity
// endpoints behind authMW live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, authMW echo.MiddlewareFunc, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", authMW)
	auth.GET("/auth/me", a.Me)
	// The dashboard landing fetch is the same identity lookup.
	auth.GET("/dashboard/data", a.Me)
}
