package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devkashyap/college-management/internal/model"
	"github.com/devkashyap/college-management/internal/repository"
)

// AttendanceHandler serves attendance marking (faculty) and viewing
// (students and faculty).
type AttendanceHandler struct {
	Attendance *repository.AttendanceRepo
	Users      *repository.UserRepo
}

func NewAttendanceHandler(att *repository.AttendanceRepo, users *repository.UserRepo) *AttendanceHandler {
	if att == nil || users == nil {
		panic("nil dependency passed to NewAttendanceHandler")
	}
	return &AttendanceHandler{Attendance: att, Users: users}
}

type markAttendanceReq struct {
	StudentID uint64 `json:"student_id"`
	Course    string `json:"course"`
	Date      string `json:"date"`   // YYYY-MM-DD
	Status    string `json:"status"` // present | absent
}

type attendanceResp struct {
	ID        uint64 `json:"id"`
	StudentID uint64 `json:"student_id"`
	Course    string `json:"course"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}

func toAttendanceResp(a model.Attendance) attendanceResp {
	return attendanceResp{
		ID:        a.ID,
		StudentID: a.StudentID,
		Course:    a.Course,
		Date:      a.Date.Format("2006-01-02"),
		Status:    a.Status,
	}
}

// Mark handles POST /v1/faculty/attendance.  Marking the same
// (student, course, date) twice is a conflict, not an overwrite.
func (h *AttendanceHandler) Mark(c echo.Context) error {
	facultyID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req markAttendanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Course = strings.TrimSpace(req.Course)
	if req.StudentID == 0 || req.Course == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "student_id and course are required"})
	}
	var status string
	switch strings.ToLower(strings.TrimSpace(req.Status)) {
	case "present":
		status = model.AttendancePresent
	case "absent":
		status = model.AttendanceAbsent
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be present or absent"})
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	if _, err := h.Users.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "student not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup student failed"})
	}

	id, err := h.Attendance.Mark(ctx, &model.Attendance{
		StudentID: req.StudentID,
		Course:    req.Course,
		Date:      date,
		Status:    status,
		MarkedBy:  facultyID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "attendance already marked for this date"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mark attendance failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "status": status})
}

// ListMine handles GET /v1/my-attendance for students.
func (h *AttendanceHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	records, err := h.Attendance.ListByStudent(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load attendance failed"})
	}
	items := make([]attendanceResp, 0, len(records))
	for _, a := range records {
		items = append(items, toAttendanceResp(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListByCourse handles GET /v1/faculty/attendance?course=X&date=YYYY-MM-DD.
func (h *AttendanceHandler) ListByCourse(c echo.Context) error {
	course := strings.TrimSpace(c.QueryParam("course"))
	if course == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "course is required"})
	}
	date, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	records, err := h.Attendance.ListByCourseAndDate(c.Request().Context(), course, date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load attendance failed"})
	}
	items := make([]attendanceResp, 0, len(records))
	for _, a := range records {
		items = append(items, toAttendanceResp(a))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
