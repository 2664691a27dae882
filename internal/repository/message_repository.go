package repository

import (
	"context"
	"database/sql"

	"github.com/devkashyap/college-management/internal/model"
)

// MessageRepo provides data access to the messages table.
type MessageRepo struct {
	db *sql.DB
}

// NewMessageRepo returns a new MessageRepo bound to the given database.
func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{db: db} }

// Create inserts a message and populates its generated ID and timestamp.
func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO messages (sender_id, recipient_id, body) VALUES (?,?,?)",
		m.SenderID, m.RecipientID, m.Body)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	// Query back for the DB-assigned timestamp so the publisher and the
	// HTTP response agree on it.
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM messages WHERE id=?", m.ID).Scan(&m.CreatedAt)
}

// ListConversation returns all messages exchanged between two users in
// either direction, oldest first.
func (r *MessageRepo) ListConversation(ctx context.Context, userA, userB uint64) ([]model.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sender_id, recipient_id, body, created_at
		 FROM messages
		 WHERE (sender_id=? AND recipient_id=?) OR (sender_id=? AND recipient_id=?)
		 ORDER BY created_at ASC, id ASC`,
		userA, userB, userB, userA)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	msgs := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return msgs, nil
}
