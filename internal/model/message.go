package model

import "time"

// Message is a direct chat message between two users.  Messages are
// persisted first; the broker event published after commit is advisory.
type Message struct {
	ID          uint64    // messages.id
	SenderID    uint64    // messages.sender_id
	RecipientID uint64    // messages.recipient_id
	Body        string    // messages.body
	CreatedAt   time.Time // messages.created_at
}
