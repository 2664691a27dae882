package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devkashyap/college-management/internal/model"
	"github.com/devkashyap/college-management/internal/repository"
)

// TaskHandler serves task assignment and completion.  Faculty assign
// tasks to students; students list their own and mark them done.
type TaskHandler struct {
	Tasks *repository.TaskRepo
	Users *repository.UserRepo
}

func NewTaskHandler(tasks *repository.TaskRepo, users *repository.UserRepo) *TaskHandler {
	if tasks == nil || users == nil {
		panic("nil dependency passed to NewTaskHandler")
	}
	return &TaskHandler{Tasks: tasks, Users: users}
}

type createTaskReq struct {
	Title      string `json:"title"`
	Details    string `json:"details"`
	AssignedTo uint64 `json:"assigned_to"`
	DueDate    string `json:"due_date"` // YYYY-MM-DD
}

type taskResp struct {
	ID         uint64 `json:"id"`
	Title      string `json:"title"`
	Details    string `json:"details"`
	AssignedTo uint64 `json:"assigned_to"`
	AssignedBy uint64 `json:"assigned_by"`
	Status     string `json:"status"`
	DueDate    string `json:"due_date"`
}

func toTaskResp(t model.Task) taskResp {
	return taskResp{
		ID:         t.ID,
		Title:      t.Title,
		Details:    t.Details,
		AssignedTo: t.AssignedTo,
		AssignedBy: t.AssignedBy,
		Status:     t.Status,
		DueDate:    t.DueDate.Format("2006-01-02"),
	}
}

// Create handles POST /v1/faculty/tasks.  The assignee must exist and be
// a student.
func (h *TaskHandler) Create(c echo.Context) error {
	facultyID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.AssignedTo == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and assigned_to are required"})
	}
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "due_date must be YYYY-MM-DD"})
	}

	ctx := c.Request().Context()
	student, err := h.Users.GetByID(ctx, req.AssignedTo)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "assignee not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup assignee failed"})
	}
	if student.Role != model.RoleStudent {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tasks can only be assigned to students"})
	}

	task := &model.Task{
		Title:      req.Title,
		Details:    strings.TrimSpace(req.Details),
		AssignedTo: req.AssignedTo,
		AssignedBy: facultyID,
		DueDate:    due,
	}
	id, err := h.Tasks.Create(ctx, task)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create task failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "status": model.TaskAssigned})
}

// ListMine handles GET /v1/my-tasks for students.
func (h *TaskHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tasks, err := h.Tasks.ListAssignedTo(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load tasks failed"})
	}
	items := make([]taskResp, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, toTaskResp(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListAssigned handles GET /v1/faculty/tasks for faculty.
func (h *TaskHandler) ListAssigned(c echo.Context) error {
	facultyID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tasks, err := h.Tasks.ListAssignedBy(c.Request().Context(), facultyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load tasks failed"})
	}
	items := make([]taskResp, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, toTaskResp(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Complete handles PUT /v1/my-tasks/:id/complete for the assigned student.
func (h *TaskHandler) Complete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid task id"})
	}
	err = h.Tasks.Complete(c.Request().Context(), taskID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTaskNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "complete task failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"status": model.TaskCompleted})
}
