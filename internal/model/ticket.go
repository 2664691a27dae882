package model

import "time"

// Ticket statuses.  A ticket starts PENDING and transitions exactly once
// to APPROVED or DECLINED; terminal tickets are never reopened.
const (
	TicketPending  = "PENDING"
	TicketApproved = "APPROVED"
	TicketDeclined = "DECLINED"
)

// Ticket records a student's request for an administrator to re-grant
// permission to edit their profile.  UserID and Description are immutable
// after creation; Status and Response are set together, once, when an
// administrator resolves the ticket.
//
// Fields:
//
//	ID          – primary key identifier.
//	UserID      – requesting user.
//	Description – free-text reason for the request.
//	Status      – PENDING, APPROVED or DECLINED.
//	Response    – administrator reply, empty until resolution.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type Ticket struct {
	ID          uint64    // tickets.id
	UserID      uint64    // tickets.user_id
	Description string    // tickets.description
	Status      string    // tickets.status
	Response    string    // tickets.response
	CreatedAt   time.Time // tickets.created_at
	UpdatedAt   time.Time // tickets.updated_at
}

// IsPending reports whether the ticket still awaits resolution.
func (t *Ticket) IsPending() bool { return t.Status == TicketPending }
