// Package queue defines message payloads exchanged over the message broker.
package queue

// ChatMessageEvent is published after a chat message has been committed to
// the database.  It carries enough information for downstream consumers to
// log or notify without querying the primary store.
type ChatMessageEvent struct {
	MessageID     uint64 `json:"message_id"`
	SenderID      uint64 `json:"sender_id"`
	SenderName    string `json:"sender_name"`
	RecipientID   uint64 `json:"recipient_id"`
	RecipientName string `json:"recipient_name"`
	Body          string `json:"body"`
	SentAt        string `json:"sent_at"`
}
