package api

import (
	"context"
	"fmt"
	"net/http"

	"makernet/internal/models"
)

// ListConversations returns the current user's conversations, most recently
// active first.
func (c *Client) ListConversations(ctx context.Context, p ListParams) ([]models.Conversation, int, error) {
	return getList[models.Conversation](ctx, c, "/conversations", p)
}

// GetConversation fetches a conversation with its messages in timestamp
// order.
func (c *Client) GetConversation(ctx context.Context, id uint) (models.Conversation, error) {
	return getOne[models.Conversation](ctx, c, fmt.Sprintf("/conversations/%d", id))
}

// SendMessage appends a message to a conversation and returns the stored
// message.
func (c *Client) SendMessage(ctx context.Context, conversationID uint, body string) (models.Message, error) {
	payload := map[string]any{"body": body}
	return mutate[models.Message](ctx, c, http.MethodPost, fmt.Sprintf("/conversations/%d/messages", conversationID), payload)
}

// MarkConversationRead zeroes the unread count for a conversation.
func (c *Client) MarkConversationRead(ctx context.Context, id uint) error {
	return c.post(ctx, fmt.Sprintf("/conversations/%d/read", id), nil, nil)
}
