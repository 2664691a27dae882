package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devkashyap/college-management/internal/model"
	"github.com/devkashyap/college-management/internal/queue"
	"github.com/devkashyap/college-management/internal/repository"
	"github.com/devkashyap/college-management/internal/service"
)

// ChatHandler serves direct messages between users.  Messages are
// committed to MySQL first; the broker event is advisory and a publish
// failure never fails the request.
type ChatHandler struct {
	Messages *repository.MessageRepo
	Users    *repository.UserRepo
}

func NewChatHandler(messages *repository.MessageRepo, users *repository.UserRepo) *ChatHandler {
	if messages == nil || users == nil {
		panic("nil dependency passed to NewChatHandler")
	}
	return &ChatHandler{Messages: messages, Users: users}
}

type sendMessageReq struct {
	RecipientID uint64 `json:"recipient_id"`
	Body        string `json:"body"`
}

type messageResp struct {
	ID          uint64 `json:"id"`
	SenderID    uint64 `json:"sender_id"`
	RecipientID uint64 `json:"recipient_id"`
	Body        string `json:"body"`
	SentAt      string `json:"sent_at"`
}

// Send handles POST /v1/messages.
func (h *ChatHandler) Send(c echo.Context) error {
	senderID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req sendMessageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Body = strings.TrimSpace(req.Body)
	if req.RecipientID == 0 || req.Body == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "recipient_id and body are required"})
	}
	if req.RecipientID == senderID {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot message yourself"})
	}

	ctx := c.Request().Context()
	sender, err := h.Users.GetByID(ctx, senderID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load sender failed"})
	}
	recipient, err := h.Users.GetByID(ctx, req.RecipientID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recipient not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup recipient failed"})
	}

	msg := &model.Message{SenderID: senderID, RecipientID: req.RecipientID, Body: req.Body}
	if err := h.Messages.Create(ctx, msg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "send message failed"})
	}

	// Best-effort event for downstream consumers (notification log).
	_ = service.PublishChatMessage(ctx, queue.ChatMessageEvent{
		MessageID:     msg.ID,
		SenderID:      sender.ID,
		SenderName:    sender.FullName,
		RecipientID:   recipient.ID,
		RecipientName: recipient.FullName,
		Body:          msg.Body,
		SentAt:        msg.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, messageResp{
		ID:          msg.ID,
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Body:        msg.Body,
		SentAt:      msg.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Conversation handles GET /v1/messages/:userID, returning both
// directions of the thread between the caller and the named user.
func (h *ChatHandler) Conversation(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	otherID, err := strconv.ParseUint(c.Param("userID"), 10, 64)
	if err != nil || otherID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	msgs, err := h.Messages.ListConversation(c.Request().Context(), userID, otherID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load conversation failed"})
	}
	items := make([]messageResp, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, messageResp{
			ID:          m.ID,
			SenderID:    m.SenderID,
			RecipientID: m.RecipientID,
			Body:        m.Body,
			SentAt:      m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
