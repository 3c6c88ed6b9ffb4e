package api

import (
	"context"
	"fmt"
	"net/http"

	"makernet/internal/models"
)

// ListGigs returns a page of open-marketplace gigs.
func (c *Client) ListGigs(ctx context.Context, p ListParams) ([]models.Gig, int, error) {
	return getList[models.Gig](ctx, c, "/gigs", p)
}

// ListMyGigs returns gigs owned by the current user.
func (c *Client) ListMyGigs(ctx context.Context, p ListParams) ([]models.Gig, int, error) {
	return getList[models.Gig](ctx, c, "/gigs/mine", p)
}

// ListMyBids returns gigs the current user has bid on.
func (c *Client) ListMyBids(ctx context.Context, p ListParams) ([]models.Bid, int, error) {
	return getList[models.Bid](ctx, c, "/bids/mine", p)
}

// GetGig fetches a single gig.
func (c *Client) GetGig(ctx context.Context, id uint) (models.Gig, error) {
	return getOne[models.Gig](ctx, c, fmt.Sprintf("/gigs/%d", id))
}

// CreateGig publishes a new gig listing.
func (c *Client) CreateGig(ctx context.Context, title, description string, budgetMin, budgetMax int, currency string) (models.Gig, error) {
	body := map[string]any{
		"title":       title,
		"description": description,
		"budget_min":  budgetMin,
		"budget_max":  budgetMax,
		"currency":    currency,
	}
	return mutate[models.Gig](ctx, c, http.MethodPost, "/gigs", body)
}

// ListBids returns all bids placed against a gig.
func (c *Client) ListBids(ctx context.Context, gigID uint) ([]models.Bid, int, error) {
	return getList[models.Bid](ctx, c, fmt.Sprintf("/gigs/%d/bids", gigID), ListParams{Limit: 100})
}

// PlaceBid submits a bid against an open gig.
func (c *Client) PlaceBid(ctx context.Context, gigID uint, amount int, message string) (models.Bid, error) {
	body := map[string]any{
		"amount":  amount,
		"message": message,
	}
	return mutate[models.Bid](ctx, c, http.MethodPost, fmt.Sprintf("/gigs/%d/bids", gigID), body)
}

// HireBid accepts a bid, transitioning the gig from open to in_progress and
// binding the hired bid. Other bids' statuses change server-side; callers
// should refetch the bid listing afterwards.
func (c *Client) HireBid(ctx context.Context, gigID, bidID uint) (models.Gig, error) {
	return mutate[models.Gig](ctx, c, http.MethodPost, fmt.Sprintf("/gigs/%d/hire/%d", gigID, bidID), nil)
}

// CompleteGig marks an in-progress gig completed. Owner only.
func (c *Client) CompleteGig(ctx context.Context, gigID uint) (models.Gig, error) {
	return mutate[models.Gig](ctx, c, http.MethodPost, fmt.Sprintf("/gigs/%d/complete", gigID), nil)
}

// ListReviews returns reviews left on a completed gig.
func (c *Client) ListReviews(ctx context.Context, gigID uint) ([]models.Review, int, error) {
	return getList[models.Review](ctx, c, fmt.Sprintf("/gigs/%d/reviews", gigID), ListParams{Limit: 10})
}

// CreateReview leaves a review on a completed gig.
func (c *Client) CreateReview(ctx context.Context, gigID uint, rating int, comment string) (models.Review, error) {
	body := map[string]any{
		"rating":  rating,
		"comment": comment,
	}
	return mutate[models.Review](ctx, c, http.MethodPost, fmt.Sprintf("/gigs/%d/reviews", gigID), body)
}
