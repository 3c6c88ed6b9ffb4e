package models

import "time"

// Message is a single direct message within a conversation. Messages are
// append-only; ordering is by timestamp with ties broken by insertion order.
type Message struct {
	ID         uint      `json:"id"`
	SenderID   uint      `json:"sender_id"`
	Body       string    `json:"body"`
	InsertedAt time.Time `json:"inserted_at"`
}

// Conversation is a direct-message thread with one other participant.
type Conversation struct {
	ID          uint      `json:"id"`
	Participant User      `json:"participant"`
	Messages    []Message `json:"messages,omitempty"`
	UnreadCount int       `json:"unread_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// InsertMessage appends msg preserving timestamp-ascending order. A message
// whose timestamp ties with an existing one lands after it, so insertion
// order is the tiebreaker. Duplicate IDs are ignored.
func (c *Conversation) InsertMessage(msg Message) {
	for _, m := range c.Messages {
		if m.ID == msg.ID {
			return
		}
	}
	i := len(c.Messages)
	for i > 0 && c.Messages[i-1].InsertedAt.After(msg.InsertedAt) {
		i--
	}
	c.Messages = append(c.Messages, Message{})
	copy(c.Messages[i+1:], c.Messages[i:])
	c.Messages[i] = msg
}
