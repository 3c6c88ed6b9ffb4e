package models

import "time"

// FeedItemType distinguishes the two kinds of feed content.
type FeedItemType string

const (
	// FeedItemUpdate is a short status update.
	FeedItemUpdate FeedItemType = "update"
	// FeedItemProject is a project showcase post.
	FeedItemProject FeedItemType = "project"
)

// FeedItem represents a post or project rendered in the reverse-chronological
// feed. Type is immutable after creation; engagement counters move only via
// explicit user actions echoed back from the server.
type FeedItem struct {
	ID               uint         `json:"id"`
	Type             FeedItemType `json:"type"`
	Title            string       `json:"title,omitempty"`
	Content          string       `json:"content"`
	Author           User         `json:"author"`
	LikesCount       int          `json:"likes_count"`
	CommentsCount    int          `json:"comments_count"`
	RepostsCount     int          `json:"reposts_count"`
	ImpressionsCount int          `json:"impressions_count"`
	Liked            bool         `json:"liked"`
	Bookmarked       bool         `json:"bookmarked"`
	Reposted         bool         `json:"reposted"`
	CreatedAt        time.Time    `json:"created_at"`
}
