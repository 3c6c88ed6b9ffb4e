package api

import (
	"context"
	"fmt"

	"makernet/internal/models"
)

// ListNotifications returns a page of the current user's notifications.
func (c *Client) ListNotifications(ctx context.Context, p ListParams) ([]models.Notification, int, error) {
	return getList[models.Notification](ctx, c, "/notifications", p)
}

// MarkNotificationRead marks a single notification read.
func (c *Client) MarkNotificationRead(ctx context.Context, id uint) error {
	return c.post(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}

// MarkAllNotificationsRead marks every notification read. Idempotent.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.post(ctx, "/notifications/read_all", nil, nil)
}
