package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/devkashyap/college-management/internal/model"
)

// TicketRepo provides data access to the tickets table.  Tickets group a
// student's profile-unlock request with the administrator's eventual
// decision.  Reads outside the resolution flow go through the pooled
// *sql.DB; the resolution itself runs against a caller-supplied *sql.Tx
// so that the ticket update and the permission grant commit together.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// spanning this repository and the permission service.
func (r *TicketRepo) DB() *sql.DB { return r.db }

// Create inserts a new PENDING ticket for the given user and returns its
// generated ID.  Description must already be validated as non-empty.
func (r *TicketRepo) Create(ctx context.Context, userID uint64, description string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tickets (user_id, description, status, response) VALUES (?,?,?,'')",
		userID, description, model.TicketPending)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a single ticket.  ErrTicketNotFound is returned when no
// row exists.
func (r *TicketRepo) GetByID(ctx context.Context, id uint64) (model.Ticket, error) {
	var t model.Ticket
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, description, status, response, created_at, updated_at FROM tickets WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.UserID, &t.Description, &t.Status, &t.Response, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Ticket{}, ErrTicketNotFound
	}
	return t, err
}

// ListByUser returns all tickets raised by a user, newest first.  An
// empty slice is returned when the user has no tickets.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, description, status, response, created_at, updated_at FROM tickets WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ListPending returns all unresolved tickets, oldest first so that
// administrators work through the queue in arrival order.
func (r *TicketRepo) ListPending(ctx context.Context) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, description, status, response, created_at, updated_at FROM tickets WHERE status=? ORDER BY created_at ASC",
		model.TicketPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows *sql.Rows) ([]model.Ticket, error) {
	tickets := make([]model.Ticket, 0)
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.Status, &t.Response, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

// GetTx fetches a ticket within the scope of an existing transaction.
// The resolution flow uses this so the status check and update see the
// same snapshot.  ErrTicketNotFound is returned when no row exists.
func (r *TicketRepo) GetTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Ticket, error) {
	var t model.Ticket
	err := tx.QueryRowContext(ctx,
		"SELECT id, user_id, description, status, response, created_at, updated_at FROM tickets WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.UserID, &t.Description, &t.Status, &t.Response, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Ticket{}, ErrTicketNotFound
	}
	return t, err
}

// ResolveTx writes the terminal status and the administrator's response
// within the given transaction.  The update is guarded by
// status='PENDING' so that two concurrent resolutions of the same ticket
// cannot both apply: the loser sees zero rows affected and receives
// ErrConflict.  The caller commits or rolls back.
func (r *TicketRepo) ResolveTx(ctx context.Context, tx *sql.Tx, id uint64, newStatus, response string, now time.Time) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE tickets SET status=?, response=?, updated_at=? WHERE id=? AND status=?",
		newStatus, response, now, id, model.TicketPending)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}
