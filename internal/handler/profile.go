package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devkashyap/college-management/internal/repository"
	"github.com/devkashyap/college-management/internal/service"
)

// ProfileHandler serves profile reads and gated profile saves.  A save is
// only permitted while the user's edit gate is open; the gate is closed
// again through the permission service after the save succeeds, so the
// next edit requires a freshly approved ticket.
type ProfileHandler struct {
	Users *repository.UserRepo
	Gate  *service.ProfileGate
}

func NewProfileHandler(users *repository.UserRepo, gate *service.ProfileGate) *ProfileHandler {
	if users == nil || gate == nil {
		panic("nil dependency passed to NewProfileHandler")
	}
	return &ProfileHandler{Users: users, Gate: gate}
}

type updateProfileReq struct {
	FullName string `json:"full_name"`
}

type profileResp struct {
	ID             uint64 `json:"id"`
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	CanEditProfile bool   `json:"can_edit_profile"`
	CreatedAt      string `json:"created_at"`
}

// Get handles GET /v1/profile for the authenticated user.
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	return c.JSON(http.StatusOK, profileResp{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role.String(),
		CanEditProfile: u.CanEditProfile,
		CreatedAt:      u.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Update handles PUT /v1/profile.  The save is rejected while the edit
// gate is closed; on success the gate is revoked again.
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FullName = strings.TrimSpace(req.FullName)
	if req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "full_name is required"})
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load profile failed"})
	}
	if !u.CanEditProfile {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "profile editing is locked; raise a ticket to request access"})
	}

	if err := h.Users.UpdateProfile(ctx, userID, req.FullName); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save profile failed"})
	}
	if err := h.Gate.Revoke(ctx, userID); err != nil {
		// The save itself succeeded; report the gate problem rather than
		// pretending the save failed.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save succeeded but relocking failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "profile saved"})
}
