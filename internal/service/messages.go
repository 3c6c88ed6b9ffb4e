package service

import (
	"context"
	"sync"

	"makernet/internal/api"
	"makernet/internal/models"
	"makernet/internal/observability"
	"makernet/internal/view"
)

// MessageAPI is the slice of the API client the messaging screen uses.
type MessageAPI interface {
	ListConversations(ctx context.Context, p api.ListParams) ([]models.Conversation, int, error)
	GetConversation(ctx context.Context, id uint) (models.Conversation, error)
	SendMessage(ctx context.Context, conversationID uint, body string) (models.Message, error)
	MarkConversationRead(ctx context.Context, id uint) error
}

func conversationID(c models.Conversation) uint { return c.ID }

// MessageService drives the direct-messaging screen: the conversation list
// plus one open conversation whose messages stay in timestamp order.
type MessageService struct {
	api           MessageAPI
	log           *observability.RequestLogger
	Conversations *view.Controller[models.Conversation]

	mu   sync.Mutex
	open *models.Conversation
}

// NewMessageService returns a MessageService with a fresh controller.
func NewMessageService(apiClient MessageAPI, pageSize int) *MessageService {
	s := &MessageService{
		api: apiClient,
		log: observability.NewRequestLogger("messages"),
	}
	s.Conversations = view.NewController("conversations", pageSize, func(ctx context.Context, f view.Filter) (view.Page[models.Conversation], error) {
		items, total, err := apiClient.ListConversations(ctx, f.Params())
		return view.Page[models.Conversation]{Items: items, Total: total}, err
	}, conversationID)
	return s
}

// Open fetches a conversation, marks it read, and makes it the active one.
func (s *MessageService) Open(ctx context.Context, id uint) (models.Conversation, error) {
	conv, err := s.api.GetConversation(ctx, id)
	if err != nil {
		return models.Conversation{}, err
	}
	if conv.UnreadCount > 0 {
		if err := s.api.MarkConversationRead(ctx, id); err != nil {
			s.log.LogAction(ctx, "mark_conversation_read", err, map[string]interface{}{"conversation_id": id})
		} else {
			conv.UnreadCount = 0
		}
	}
	s.Conversations.Patch(id, func(c *models.Conversation) { c.UnreadCount = conv.UnreadCount })

	s.mu.Lock()
	s.open = &conv
	s.mu.Unlock()
	return conv, nil
}

// Close drops the active conversation.
func (s *MessageService) Close() {
	s.mu.Lock()
	s.open = nil
	s.mu.Unlock()
}

// Send appends a message to a conversation. The stored message from the
// server is inserted locally preserving timestamp order.
func (s *MessageService) Send(ctx context.Context, conversationID uint, body string) (models.Message, error) {
	msg, err := s.api.SendMessage(ctx, conversationID, body)
	s.log.LogAction(ctx, "send_message", err, map[string]interface{}{"conversation_id": conversationID})
	if err != nil {
		return models.Message{}, err
	}
	s.appendLocal(conversationID, msg, false)
	return msg, nil
}

// HandleIncoming reconciles a message delivered over the realtime stream:
// appended to the open conversation, or counted as unread otherwise.
func (s *MessageService) HandleIncoming(conversationID uint, msg models.Message) {
	s.appendLocal(conversationID, msg, true)
}

func (s *MessageService) appendLocal(conversationID uint, msg models.Message, incoming bool) {
	s.mu.Lock()
	openID := uint(0)
	if s.open != nil && s.open.ID == conversationID {
		s.open.InsertMessage(msg)
		openID = s.open.ID
	}
	s.mu.Unlock()

	s.Conversations.Patch(conversationID, func(c *models.Conversation) {
		if incoming && openID != conversationID {
			c.UnreadCount++
		}
	})
}

// OpenConversation returns a copy of the active conversation, if any.
func (s *MessageService) OpenConversation() (models.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open == nil {
		return models.Conversation{}, false
	}
	conv := *s.open
	conv.Messages = make([]models.Message, len(s.open.Messages))
	copy(conv.Messages, s.open.Messages)
	return conv, true
}
