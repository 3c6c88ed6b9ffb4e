package service

import (
	"context"
	"fmt"

	"makernet/internal/api"
	"makernet/internal/models"
	"makernet/internal/observability"
	"makernet/internal/view"
)

// NotificationAPI is the slice of the API client the notifications screen
// uses.
type NotificationAPI interface {
	ListNotifications(ctx context.Context, p api.ListParams) ([]models.Notification, int, error)
	MarkNotificationRead(ctx context.Context, id uint) error
	MarkAllNotificationsRead(ctx context.Context) error
}

func notificationID(n models.Notification) uint { return n.ID }

// NotificationService drives the notifications screen.
type NotificationService struct {
	api  NotificationAPI
	log  *observability.RequestLogger
	List *view.Controller[models.Notification]
}

// NewNotificationService returns a NotificationService with a fresh
// controller.
func NewNotificationService(apiClient NotificationAPI, pageSize int) *NotificationService {
	s := &NotificationService{
		api: apiClient,
		log: observability.NewRequestLogger("notifications"),
	}
	s.List = view.NewController("notifications", pageSize, func(ctx context.Context, f view.Filter) (view.Page[models.Notification], error) {
		items, total, err := apiClient.ListNotifications(ctx, f.Params())
		return view.Page[models.Notification]{Items: items, Total: total}, err
	}, notificationID)
	return s
}

// UnreadCount returns the number of unread notifications on the current
// page.
func (s *NotificationService) UnreadCount() int {
	count := 0
	for _, n := range s.List.Items() {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification read. Read only ever moves false→true;
// marking an already-read notification is a local no-op with no request.
func (s *NotificationService) MarkRead(ctx context.Context, id uint) error {
	for _, n := range s.List.Items() {
		if n.ID == id && n.Read {
			return nil
		}
	}
	err := s.api.MarkNotificationRead(ctx, id)
	s.log.LogAction(ctx, "mark_read", err, map[string]interface{}{"notification_id": id})
	if err != nil {
		return err
	}
	s.List.Patch(id, func(n *models.Notification) { n.Read = true })
	return nil
}

// MarkAllRead marks every notification read and zeroes the unread count.
// Idempotent: a second call produces the same state.
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	err := s.api.MarkAllNotificationsRead(ctx)
	s.log.LogAction(ctx, "mark_all_read", err, nil)
	if err != nil {
		return err
	}
	s.List.Transform(func(n *models.Notification) { n.Read = true })
	return nil
}

// Rendered is the display form of a notification.
type Rendered struct {
	Icon string
	Text string
	Link string
}

// RenderNotification maps a notification to its display icon, text, and
// link. Total over the notification types: follow links to the actor's
// profile, everything else to the target content, falling back to "#" when
// no target is present.
func RenderNotification(n models.Notification) Rendered {
	actor := n.Actor.DisplayName
	if actor == "" {
		actor = n.Actor.Username
	}

	link := "#"
	if n.Type == models.NotificationFollow {
		link = "/u/" + n.Actor.Username
	} else if n.Target != nil {
		link = fmt.Sprintf("/%ss/%d", n.Target.Type, n.Target.ID)
	}

	var icon, verb string
	switch n.Type {
	case models.NotificationLike:
		icon, verb = "♥", "liked your post"
	case models.NotificationComment:
		icon, verb = "💬", "commented on your post"
	case models.NotificationFollow:
		icon, verb = "+", "followed you"
	case models.NotificationRepost:
		icon, verb = "⇄", "reposted your post"
	case models.NotificationMention:
		icon, verb = "@", "mentioned you"
	default:
		icon, verb = "•", "sent you a notification"
	}

	text := actor + " " + verb
	if n.Content != "" {
		text += ": " + n.Content
	}
	return Rendered{Icon: icon, Text: text, Link: link}
}
