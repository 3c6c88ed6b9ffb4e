package models

import (
	"testing"
	"time"
)

func TestConversationInsertMessage(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	msg := func(id uint, offset time.Duration) Message {
		return Message{ID: id, Body: "m", InsertedAt: base.Add(offset)}
	}

	t.Run("keeps timestamp order", func(t *testing.T) {
		c := &Conversation{}
		c.InsertMessage(msg(1, 0))
		c.InsertMessage(msg(3, 2*time.Minute))
		c.InsertMessage(msg(2, time.Minute))

		want := []uint{1, 2, 3}
		for i, id := range want {
			if c.Messages[i].ID != id {
				t.Fatalf("position %d: got id %d, want %d", i, c.Messages[i].ID, id)
			}
		}
	})

	t.Run("equal timestamps keep insertion order", func(t *testing.T) {
		c := &Conversation{}
		c.InsertMessage(msg(1, 0))
		c.InsertMessage(msg(2, 0))
		c.InsertMessage(msg(3, 0))

		for i, id := range []uint{1, 2, 3} {
			if c.Messages[i].ID != id {
				t.Fatalf("position %d: got id %d, want %d", i, c.Messages[i].ID, id)
			}
		}
	})

	t.Run("duplicate id is ignored", func(t *testing.T) {
		c := &Conversation{}
		c.InsertMessage(msg(1, 0))
		dup := msg(1, time.Hour)
		dup.Body = "changed"
		c.InsertMessage(dup)

		if len(c.Messages) != 1 {
			t.Fatalf("got %d messages, want 1", len(c.Messages))
		}
		if c.Messages[0].Body != "m" {
			t.Fatal("duplicate insert must not overwrite the original")
		}
	})
}
