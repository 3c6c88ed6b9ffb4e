// Package service binds the API client to list controllers and enforces the
// client-side domain rules for each screen family. Mutation failures leave
// local state unchanged; errors are returned inline and never retried
// automatically.
package service

import (
	"context"

	"makernet/internal/api"
	"makernet/internal/models"
	"makernet/internal/observability"
	"makernet/internal/view"
)

// FeedAPI is the slice of the API client the feed screens use.
type FeedAPI interface {
	ListFeed(ctx context.Context, p api.ListParams) ([]models.FeedItem, int, error)
	ListBookmarks(ctx context.Context, p api.ListParams) ([]models.FeedItem, int, error)
	CreatePost(ctx context.Context, itemType models.FeedItemType, title, content string) (models.FeedItem, error)
	ToggleLike(ctx context.Context, id uint) (models.FeedItem, error)
	ToggleBookmark(ctx context.Context, id uint) (models.FeedItem, error)
	ToggleRepost(ctx context.Context, id uint) (models.FeedItem, error)
	ReportContent(ctx context.Context, targetType models.ReportableType, targetID uint, reason string) (models.Report, error)
}

func feedItemID(i models.FeedItem) uint { return i.ID }

// FeedService drives the feed and bookmarks screens.
type FeedService struct {
	api       FeedAPI
	log       *observability.RequestLogger
	Feed      *view.Controller[models.FeedItem]
	Bookmarks *view.Controller[models.FeedItem]
}

// NewFeedService returns a FeedService with fresh controllers.
func NewFeedService(apiClient FeedAPI, pageSize int) *FeedService {
	s := &FeedService{
		api: apiClient,
		log: observability.NewRequestLogger("feed"),
	}
	s.Feed = view.NewController("feed", pageSize, func(ctx context.Context, f view.Filter) (view.Page[models.FeedItem], error) {
		items, total, err := apiClient.ListFeed(ctx, f.Params())
		return view.Page[models.FeedItem]{Items: items, Total: total}, err
	}, feedItemID)
	s.Bookmarks = view.NewController("bookmarks", pageSize, func(ctx context.Context, f view.Filter) (view.Page[models.FeedItem], error) {
		items, total, err := apiClient.ListBookmarks(ctx, f.Params())
		return view.Page[models.FeedItem]{Items: items, Total: total}, err
	}, feedItemID)
	return s
}

// CreatePost publishes a new post and refetches the feed so the new item
// appears in server order.
func (s *FeedService) CreatePost(ctx context.Context, itemType models.FeedItemType, title, content string) (models.FeedItem, error) {
	item, err := s.api.CreatePost(ctx, itemType, title, content)
	s.log.LogAction(ctx, "create_post", err, map[string]interface{}{"type": itemType})
	if err != nil {
		return models.FeedItem{}, err
	}
	s.Feed.Refresh(ctx)
	return item, nil
}

// ToggleLike flips the like state on an item. Counters come from the server
// echo, never from local arithmetic.
func (s *FeedService) ToggleLike(ctx context.Context, id uint) error {
	updated, err := s.api.ToggleLike(ctx, id)
	s.log.LogAction(ctx, "toggle_like", err, map[string]interface{}{"post_id": id})
	if err != nil {
		return err
	}
	s.Feed.Replace(id, updated)
	s.Bookmarks.Replace(id, updated)
	return nil
}

// ToggleBookmark flips the bookmark state. Un-bookmarking from the
// bookmarks screen removes the row.
func (s *FeedService) ToggleBookmark(ctx context.Context, id uint) error {
	updated, err := s.api.ToggleBookmark(ctx, id)
	s.log.LogAction(ctx, "toggle_bookmark", err, map[string]interface{}{"post_id": id})
	if err != nil {
		return err
	}
	s.Feed.Replace(id, updated)
	if updated.Bookmarked {
		s.Bookmarks.Replace(id, updated)
	} else {
		s.Bookmarks.Remove(id)
	}
	return nil
}

// ToggleRepost flips the repost state on an item.
func (s *FeedService) ToggleRepost(ctx context.Context, id uint) error {
	updated, err := s.api.ToggleRepost(ctx, id)
	s.log.LogAction(ctx, "toggle_repost", err, map[string]interface{}{"post_id": id})
	if err != nil {
		return err
	}
	s.Feed.Replace(id, updated)
	s.Bookmarks.Replace(id, updated)
	return nil
}

// Report files a moderation report against a feed item.
func (s *FeedService) Report(ctx context.Context, targetType models.ReportableType, targetID uint, reason string) error {
	_, err := s.api.ReportContent(ctx, targetType, targetID, reason)
	s.log.LogAction(ctx, "report_content", err, map[string]interface{}{
		"target_type": targetType,
		"target_id":   targetID,
	})
	return err
}
