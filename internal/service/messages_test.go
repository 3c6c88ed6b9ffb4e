package service

import (
	"context"
	"testing"
	"time"

	"makernet/internal/api"
	"makernet/internal/models"
)

type messageAPIStub struct {
	listConversationsFn    func(context.Context, api.ListParams) ([]models.Conversation, int, error)
	getConversationFn      func(context.Context, uint) (models.Conversation, error)
	sendMessageFn          func(context.Context, uint, string) (models.Message, error)
	markConversationReadFn func(context.Context, uint) error
}

func (s *messageAPIStub) ListConversations(ctx context.Context, p api.ListParams) ([]models.Conversation, int, error) {
	return s.listConversationsFn(ctx, p)
}
func (s *messageAPIStub) GetConversation(ctx context.Context, id uint) (models.Conversation, error) {
	return s.getConversationFn(ctx, id)
}
func (s *messageAPIStub) SendMessage(ctx context.Context, id uint, body string) (models.Message, error) {
	return s.sendMessageFn(ctx, id, body)
}
func (s *messageAPIStub) MarkConversationRead(ctx context.Context, id uint) error {
	return s.markConversationReadFn(ctx, id)
}

func messageFixture() *messageAPIStub {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return &messageAPIStub{
		listConversationsFn: func(context.Context, api.ListParams) ([]models.Conversation, int, error) {
			return []models.Conversation{
				{ID: 1, UnreadCount: 2},
				{ID: 2, UnreadCount: 0},
			}, 2, nil
		},
		getConversationFn: func(_ context.Context, id uint) (models.Conversation, error) {
			return models.Conversation{
				ID:          id,
				UnreadCount: 2,
				Messages: []models.Message{
					{ID: 10, Body: "hi", InsertedAt: base},
					{ID: 11, Body: "hello", InsertedAt: base.Add(time.Minute)},
				},
			}, nil
		},
		sendMessageFn: func(_ context.Context, id uint, body string) (models.Message, error) {
			return models.Message{ID: 12, Body: body, InsertedAt: base.Add(2 * time.Minute)}, nil
		},
		markConversationReadFn: func(context.Context, uint) error { return nil },
	}
}

func TestMessageServiceOpenMarksRead(t *testing.T) {
	stub := messageFixture()
	marked := uint(0)
	stub.markConversationReadFn = func(_ context.Context, id uint) error {
		marked = id
		return nil
	}

	svc := NewMessageService(stub, 10)
	ctx := context.Background()
	svc.Conversations.Refresh(ctx)

	conv, err := svc.Open(ctx, 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if marked != 1 {
		t.Fatal("opening an unread conversation must mark it read")
	}
	if conv.UnreadCount != 0 {
		t.Fatalf("unread = %d after open, want 0", conv.UnreadCount)
	}
	if got := svc.Conversations.Items()[0].UnreadCount; got != 0 {
		t.Fatalf("list row unread = %d, want 0", got)
	}

	// Opening an already-read conversation issues no mark request.
	marked = 0
	stub.getConversationFn = func(_ context.Context, id uint) (models.Conversation, error) {
		return models.Conversation{ID: id, UnreadCount: 0}, nil
	}
	if _, err := svc.Open(ctx, 2); err != nil {
		t.Fatalf("Open read conversation: %v", err)
	}
	if marked != 0 {
		t.Fatal("already-read conversation must not be marked again")
	}
}

func TestMessageServiceSendKeepsOrder(t *testing.T) {
	stub := messageFixture()
	svc := NewMessageService(stub, 10)
	ctx := context.Background()

	if _, err := svc.Open(ctx, 1); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := svc.Send(ctx, 1, "newest"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	conv, ok := svc.OpenConversation()
	if !ok {
		t.Fatal("expected an open conversation")
	}
	if len(conv.Messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(conv.Messages))
	}
	if conv.Messages[2].Body != "newest" {
		t.Fatalf("last message = %q, want newest", conv.Messages[2].Body)
	}
	for i := 1; i < len(conv.Messages); i++ {
		if conv.Messages[i].InsertedAt.Before(conv.Messages[i-1].InsertedAt) {
			t.Fatal("messages out of timestamp order")
		}
	}
}

func TestMessageServiceIncomingUnreadCounting(t *testing.T) {
	stub := messageFixture()
	svc := NewMessageService(stub, 10)
	ctx := context.Background()
	svc.Conversations.Refresh(ctx)

	if _, err := svc.Open(ctx, 1); err != nil {
		t.Fatalf("Open: %v", err)
	}

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// Incoming on the open conversation: appended, not counted unread.
	svc.HandleIncoming(1, models.Message{ID: 20, Body: "live", InsertedAt: now})
	conv, _ := svc.OpenConversation()
	if len(conv.Messages) != 3 {
		t.Fatalf("open conversation has %d messages, want 3", len(conv.Messages))
	}
	if got := svc.Conversations.Items()[0].UnreadCount; got != 0 {
		t.Fatalf("open conversation unread = %d, want 0", got)
	}

	// Incoming elsewhere bumps that row's unread count.
	svc.HandleIncoming(2, models.Message{ID: 21, Body: "psst", InsertedAt: now})
	if got := svc.Conversations.Items()[1].UnreadCount; got != 1 {
		t.Fatalf("background conversation unread = %d, want 1", got)
	}

	// Duplicate delivery of the same message id is ignored.
	svc.HandleIncoming(1, models.Message{ID: 20, Body: "live", InsertedAt: now})
	conv, _ = svc.OpenConversation()
	if len(conv.Messages) != 3 {
		t.Fatalf("duplicate delivery changed message count to %d", len(conv.Messages))
	}
}
