package router

import (
	"github.com/labstack/echo/v4"

	"github.com/devkashyap/college-management/internal/handler"
	"github.com/devkashyap/college-management/internal/middleware"
	"github.com/devkashyap/college-management/internal/model"
)

// RegisterFaculty registers faculty-scoped endpoints under /v1/faculty.
// Administrators are also allowed here so they can cover for faculty.
func RegisterFaculty(e *echo.Echo, tk *handler.TaskHandler, a *handler.AttendanceHandler, r *handler.ResumeHandler, jwtSecret string) {
	g := e.Group(
		"/v1/faculty",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleFaculty, model.RoleSuperAdmin),
	)
	g.POST("/tasks", tk.Create)
	g.GET("/tasks", tk.ListAssigned)
	g.POST("/attendance", a.Mark)
	g.GET("/attendance", a.ListByCourse)
	g.GET("/resumes/:userID", r.GetByStudent)
}
