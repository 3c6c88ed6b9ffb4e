package api

import (
	"context"
	"fmt"
	"net/http"

	"makernet/internal/models"
)

// ListFeed returns a page of feed items and the total count.
func (c *Client) ListFeed(ctx context.Context, p ListParams) ([]models.FeedItem, int, error) {
	return getList[models.FeedItem](ctx, c, "/feed", p)
}

// ListBookmarks returns the current user's bookmarked items.
func (c *Client) ListBookmarks(ctx context.Context, p ListParams) ([]models.FeedItem, int, error) {
	return getList[models.FeedItem](ctx, c, "/bookmarks", p)
}

// CreatePost publishes a new update or project post.
func (c *Client) CreatePost(ctx context.Context, itemType models.FeedItemType, title, content string) (models.FeedItem, error) {
	body := map[string]any{
		"type":    itemType,
		"title":   title,
		"content": content,
	}
	return mutate[models.FeedItem](ctx, c, http.MethodPost, "/posts", body)
}

// ToggleLike flips the like state on a feed item and returns the updated
// item with server-echoed counters.
func (c *Client) ToggleLike(ctx context.Context, id uint) (models.FeedItem, error) {
	return mutate[models.FeedItem](ctx, c, http.MethodPost, fmt.Sprintf("/posts/%d/like", id), nil)
}

// ToggleBookmark flips the bookmark state on a feed item.
func (c *Client) ToggleBookmark(ctx context.Context, id uint) (models.FeedItem, error) {
	return mutate[models.FeedItem](ctx, c, http.MethodPost, fmt.Sprintf("/posts/%d/bookmark", id), nil)
}

// ToggleRepost flips the repost state on a feed item.
func (c *Client) ToggleRepost(ctx context.Context, id uint) (models.FeedItem, error) {
	return mutate[models.FeedItem](ctx, c, http.MethodPost, fmt.Sprintf("/posts/%d/repost", id), nil)
}

// ReportContent files a moderation report against a piece of content.
func (c *Client) ReportContent(ctx context.Context, targetType models.ReportableType, targetID uint, reason string) (models.Report, error) {
	body := map[string]any{
		"reportable_type": targetType,
		"reportable_id":   targetID,
		"reason":          reason,
	}
	return mutate[models.Report](ctx, c, http.MethodPost, "/reports", body)
}
