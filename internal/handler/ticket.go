package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devkashyap/college-management/internal/database"
	"github.com/devkashyap/college-management/internal/model"
	"github.com/devkashyap/college-management/internal/repository"
	"github.com/devkashyap/college-management/internal/service"
)

// TicketHandler serves the profile-unlock ticket workflow.  Students
// raise and list tickets; administrators review the pending queue and
// resolve tickets.  Resolution is the one flow here that mutates two
// tables, so it runs inside a scoped transaction: the ticket's terminal
// status and the owner's profile edit grant are never visible apart.
type TicketHandler struct {
	Tickets *repository.TicketRepo
	Gate    *service.ProfileGate
}

// NewTicketHandler constructs a TicketHandler.  Both dependencies must be
// non-nil.
func NewTicketHandler(tickets *repository.TicketRepo, gate *service.ProfileGate) *TicketHandler {
	if tickets == nil || gate == nil {
		panic("nil dependency passed to NewTicketHandler")
	}
	return &TicketHandler{Tickets: tickets, Gate: gate}
}

type createTicketReq struct {
	Description string `json:"description"`
}

type resolveTicketReq struct {
	Action   string `json:"action"` // "approve" | "decline"
	Response string `json:"response"`
}

type ticketResp struct {
	ID          uint64 `json:"id"`
	UserID      uint64 `json:"user_id"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Response    string `json:"response"`
	CreatedAt   string `json:"created_at"`
}

func toTicketResp(t model.Ticket) ticketResp {
	return ticketResp{
		ID:          t.ID,
		UserID:      t.UserID,
		Description: t.Description,
		Status:      t.Status,
		Response:    t.Response,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /v1/tickets.  A student raises a request to have
// their profile unlocked; the ticket starts PENDING with an empty
// response.
func (h *TicketHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createTicketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "description is required"})
	}
	ctx := c.Request().Context()
	id, err := h.Tickets.Create(ctx, userID, req.Description)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create ticket failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":     id,
		"status": model.TicketPending,
	})
}

// ListMine handles GET /v1/my-tickets for the requesting student.
func (h *TicketHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tickets, err := h.Tickets.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load tickets failed"})
	}
	items := make([]ticketResp, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, toTicketResp(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListPending handles GET /v1/admin/tickets for administrators reviewing
// the queue, oldest first.
func (h *TicketHandler) ListPending(c echo.Context) error {
	tickets, err := h.Tickets.ListPending(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load tickets failed"})
	}
	items := make([]ticketResp, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, toTicketResp(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Resolve handles PUT /v1/admin/tickets/:id/resolve.  The administrator
// approves or declines a pending ticket with a mandatory response.
// Validation runs before any store access; nothing is acquired for a bad
// request.  Inside the transaction the ticket update is guarded by a
// pending-status check, and on approve the owner's profile edit gate is
// granted through the permission service.  Any failure rolls the whole
// transaction back, so no caller can observe the ticket resolved without
// the grant or vice versa.
func (h *TicketHandler) Resolve(c echo.Context) error {
	ticketID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || ticketID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}
	var req resolveTicketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	action := strings.ToLower(strings.TrimSpace(req.Action))
	if action != "approve" && action != "decline" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "action must be approve or decline"})
	}
	req.Response = strings.TrimSpace(req.Response)
	if req.Response == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "response is required"})
	}

	newStatus := model.TicketDeclined
	if action == "approve" {
		newStatus = model.TicketApproved
	}

	ctx := c.Request().Context()
	err = database.WithinTx(ctx, h.Tickets.DB(), func(tx *sql.Tx) error {
		ticket, err := h.Tickets.GetTx(ctx, tx, ticketID)
		if err != nil {
			return err
		}
		if !ticket.IsPending() {
			return repository.ErrConflict
		}
		if err := h.Tickets.ResolveTx(ctx, tx, ticketID, newStatus, req.Response, time.Now().UTC()); err != nil {
			return err
		}
		if newStatus == model.TicketApproved {
			if err := h.Gate.GrantTx(ctx, tx, ticket.UserID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrTicketNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		case errors.Is(err, repository.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket owner not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "ticket already resolved"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "resolve failed"})
		}
	}

	word := "declined"
	if newStatus == model.TicketApproved {
		word = "approved"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "ticket " + word,
		"status":  newStatus,
	})
}
