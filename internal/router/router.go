// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/devkashyap/college-management/internal/handler"
	"github.com/devkashyap/college-management/internal/middleware"
	"github.com/devkashyap/college-management/internal/model"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check, used by load balancers and
// monitoring to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes.
// Unauthenticated operations live under /v1/auth, protected endpoints
// under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts either a bearer token (all sessions) or a refresh
	// token in the body (single session), so it lives outside the JWT
	// middleware.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(model.RoleStudent, model.RoleFaculty, model.RoleSuperAdmin))
	auth.GET("/me", a.Me)
}

// RegisterCommon registers endpoints available to every authenticated
// role: profile, chat and resume storage.
func RegisterCommon(e *echo.Echo, p *handler.ProfileHandler, ch *handler.ChatHandler, r *handler.ResumeHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStudent, model.RoleFaculty, model.RoleSuperAdmin),
	)
	g.GET("/profile", p.Get)
	g.PUT("/profile", p.Update)
	g.POST("/messages", ch.Send)
	g.GET("/messages/:userID", ch.Conversation)
	g.PUT("/resume", r.Save)
	g.GET("/resume", r.GetMine)
}
