package router

import (
	"github.com/labstack/echo/v4"

	"github.com/devkashyap/college-management/internal/handler"
	"github.com/devkashyap/college-management/internal/middleware"
	"github.com/devkashyap/college-management/internal/model"
)

// RegisterAdmin registers administrator endpoints under /v1/admin.  Only
// SUPERADMIN accounts may review and resolve profile-unlock tickets; the
// role check happens here so the resolution flow itself never has to.
func RegisterAdmin(e *echo.Echo, t *handler.TicketHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleSuperAdmin),
	)
	g.GET("/tickets", t.ListPending)
	g.PUT("/tickets/:id/resolve", t.Resolve)
}
