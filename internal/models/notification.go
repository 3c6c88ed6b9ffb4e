package models

import "time"

// NotificationType identifies the user action that produced a notification.
type NotificationType string

const (
	// NotificationLike is produced when someone likes the user's content.
	NotificationLike NotificationType = "like"
	// NotificationComment is produced when someone comments on the user's content.
	NotificationComment NotificationType = "comment"
	// NotificationFollow is produced when someone follows the user.
	NotificationFollow NotificationType = "follow"
	// NotificationRepost is produced when someone reposts the user's content.
	NotificationRepost NotificationType = "repost"
	// NotificationMention is produced when someone mentions the user.
	NotificationMention NotificationType = "mention"
)

// NotificationTarget points at the content a notification refers to.
type NotificationTarget struct {
	Type  string `json:"type"`
	ID    uint   `json:"id"`
	Title string `json:"title,omitempty"`
}

// Notification represents an activity notification. Read transitions
// false→true only, never back.
type Notification struct {
	ID        uint                `json:"id"`
	Type      NotificationType    `json:"type"`
	Actor     User                `json:"actor"`
	Target    *NotificationTarget `json:"target,omitempty"`
	Content   string              `json:"content,omitempty"`
	Read      bool                `json:"read"`
	CreatedAt time.Time           `json:"created_at"`
}
