package router

import (
	"github.com/labstack/echo/v4"

	"github.com/devkashyap/college-management/internal/handler"
	"github.com/devkashyap/college-management/internal/middleware"
	"github.com/devkashyap/college-management/internal/model"
)

// RegisterStudent registers student-scoped endpoints under /v1.  All
// routes require a valid JWT and the STUDENT role.  Students raise and
// list profile-unlock tickets, work through assigned tasks and view
// their own attendance.
func RegisterStudent(e *echo.Echo, t *handler.TicketHandler, tk *handler.TaskHandler, a *handler.AttendanceHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStudent),
	)
	g.POST("/tickets", t.Create)
	g.GET("/my-tickets", t.ListMine)
	g.GET("/my-tasks", tk.ListMine)
	g.PUT("/my-tasks/:id/complete", tk.Complete)
	g.GET("/my-attendance", a.ListMine)
}
