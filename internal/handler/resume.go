package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devkashyap/college-management/internal/model"
	"github.com/devkashyap/college-management/internal/repository"
)

// ResumeHandler serves resume storage.  Rendering to HTML/PDF happens in
// a separate client; this service only keeps the structured text.
type ResumeHandler struct {
	Resumes *repository.ResumeRepo
}

func NewResumeHandler(resumes *repository.ResumeRepo) *ResumeHandler {
	if resumes == nil {
		panic("nil dependency passed to NewResumeHandler")
	}
	return &ResumeHandler{Resumes: resumes}
}

type upsertResumeReq struct {
	Summary    string `json:"summary"`
	Education  string `json:"education"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
}

type resumeResp struct {
	UserID     uint64 `json:"user_id"`
	Summary    string `json:"summary"`
	Education  string `json:"education"`
	Experience string `json:"experience"`
	Skills     string `json:"skills"`
	UpdatedAt  string `json:"updated_at"`
}

// Save handles PUT /v1/resume, creating or replacing the caller's resume.
func (h *ResumeHandler) Save(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req upsertResumeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	err = h.Resumes.Upsert(c.Request().Context(), &model.Resume{
		UserID:     userID,
		Summary:    req.Summary,
		Education:  req.Education,
		Experience: req.Experience,
		Skills:     req.Skills,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save resume failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "resume saved"})
}

// GetMine handles GET /v1/resume for the caller's own resume.
func (h *ResumeHandler) GetMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return h.respond(c, userID)
}

// GetByStudent handles GET /v1/faculty/resumes/:userID so faculty and
// administrators can review a student's resume.
func (h *ResumeHandler) GetByStudent(c echo.Context) error {
	studentID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil || studentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	return h.respond(c, studentID)
}

func (h *ResumeHandler) respond(c echo.Context, userID uint64) error {
	res, err := h.Resumes.GetByUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "resume not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load resume failed"})
	}
	return c.JSON(http.StatusOK, resumeResp{
		UserID:     res.UserID,
		Summary:    res.Summary,
		Education:  res.Education,
		Experience: res.Experience,
		Skills:     res.Skills,
		UpdatedAt:  res.UpdatedAt.UTC().Format(time.RFC3339),
	})
}
