package service

import (
	"context"
	"errors"
	"fmt"

	"makernet/internal/api"
	"makernet/internal/models"
	"makernet/internal/observability"
	"makernet/internal/session"
	"makernet/internal/view"
)

// Gig screen tab names.
const (
	TabBrowse = "browse"
	TabMyGigs = "my-gigs"
	TabMyBids = "my-bids"
)

// ErrAlreadyReviewed indicates the user has already left a review on a gig.
var ErrAlreadyReviewed = errors.New("you have already reviewed this gig")

// GigAPI is the slice of the API client the gigs marketplace uses.
type GigAPI interface {
	ListGigs(ctx context.Context, p api.ListParams) ([]models.Gig, int, error)
	ListMyGigs(ctx context.Context, p api.ListParams) ([]models.Gig, int, error)
	ListMyBids(ctx context.Context, p api.ListParams) ([]models.Bid, int, error)
	GetGig(ctx context.Context, id uint) (models.Gig, error)
	CreateGig(ctx context.Context, title, description string, budgetMin, budgetMax int, currency string) (models.Gig, error)
	ListBids(ctx context.Context, gigID uint) ([]models.Bid, int, error)
	PlaceBid(ctx context.Context, gigID uint, amount int, message string) (models.Bid, error)
	HireBid(ctx context.Context, gigID, bidID uint) (models.Gig, error)
	CompleteGig(ctx context.Context, gigID uint) (models.Gig, error)
	ListReviews(ctx context.Context, gigID uint) ([]models.Review, int, error)
	CreateReview(ctx context.Context, gigID uint, rating int, comment string) (models.Review, error)
}

func gigID(g models.Gig) uint { return g.ID }
func bidID(b models.Bid) uint { return b.ID }

// GigService drives the gigs marketplace screen: a browse tab, the user's
// own gigs, and the user's bids, each with its own controller.
type GigService struct {
	api  GigAPI
	sess *session.Session
	log  *observability.RequestLogger

	Browse *view.Controller[models.Gig]
	Mine   *view.Controller[models.Gig]
	MyBids *view.Controller[models.Bid]
	Tabs   *view.Tabs
}

// NewGigService returns a GigService bound to the given session.
func NewGigService(apiClient GigAPI, sess *session.Session, pageSize int) *GigService {
	s := &GigService{
		api:  apiClient,
		sess: sess,
		log:  observability.NewRequestLogger("gigs"),
	}
	s.Browse = view.NewController("gigs_browse", pageSize, func(ctx context.Context, f view.Filter) (view.Page[models.Gig], error) {
		items, total, err := apiClient.ListGigs(ctx, f.Params())
		return view.Page[models.Gig]{Items: items, Total: total}, err
	}, gigID)
	s.Mine = view.NewController("gigs_mine", pageSize, func(ctx context.Context, f view.Filter) (view.Page[models.Gig], error) {
		items, total, err := apiClient.ListMyGigs(ctx, f.Params())
		return view.Page[models.Gig]{Items: items, Total: total}, err
	}, gigID)
	s.MyBids = view.NewController("gigs_my_bids", pageSize, func(ctx context.Context, f view.Filter) (view.Page[models.Bid], error) {
		items, total, err := apiClient.ListMyBids(ctx, f.Params())
		return view.Page[models.Bid]{Items: items, Total: total}, err
	}, bidID)

	s.Tabs = view.NewTabs()
	s.Tabs.Register(TabBrowse, s.Browse.Refresh)
	s.Tabs.Register(TabMyGigs, s.Mine.Refresh)
	s.Tabs.Register(TabMyBids, s.MyBids.Refresh)
	return s
}

// CanBid reports whether the session user may bid on the gig.
func (s *GigService) CanBid(g models.Gig) bool {
	return g.CanBid(s.sess.UserID(), s.sess.Authenticated())
}

// CreateGig publishes a new listing and refetches the owner's gigs.
func (s *GigService) CreateGig(ctx context.Context, title, description string, budgetMin, budgetMax int, currency string) (models.Gig, error) {
	if err := s.sess.RequireAuth(); err != nil {
		return models.Gig{}, err
	}
	if budgetMin < 0 || budgetMax < budgetMin {
		return models.Gig{}, errors.New("budget range is invalid")
	}
	gig, err := s.api.CreateGig(ctx, title, description, budgetMin, budgetMax, currency)
	s.log.LogAction(ctx, "create_gig", err, map[string]interface{}{"title": title})
	if err != nil {
		return models.Gig{}, err
	}
	s.Mine.Refresh(ctx)
	return gig, nil
}

// PlaceBid submits a bid against an open gig after checking the client-side
// eligibility rules.
func (s *GigService) PlaceBid(ctx context.Context, g models.Gig, amount int, message string) (models.Bid, error) {
	if err := s.sess.RequireAuth(); err != nil {
		return models.Bid{}, err
	}
	if !s.CanBid(g) {
		return models.Bid{}, fmt.Errorf("bidding is not open on gig %d", g.ID)
	}
	if amount <= 0 {
		return models.Bid{}, errors.New("bid amount must be positive")
	}
	bid, err := s.api.PlaceBid(ctx, g.ID, amount, message)
	s.log.LogAction(ctx, "place_bid", err, map[string]interface{}{"gig_id": g.ID, "amount": amount})
	if err != nil {
		return models.Bid{}, err
	}
	s.MyBids.Refresh(ctx)
	return bid, nil
}

// Hire accepts a bid on one of the session user's open gigs. The gig moves
// open→in_progress with the hired bid bound, and the bid listing is
// refetched so server-side status changes on the other bids show up.
func (s *GigService) Hire(ctx context.Context, g models.Gig, bidID uint) (models.Gig, []models.Bid, error) {
	if !g.CanHire(s.sess.UserID()) {
		return models.Gig{}, nil, fmt.Errorf("gig %d cannot be hired from status %s", g.ID, g.Status)
	}
	updated, err := s.api.HireBid(ctx, g.ID, bidID)
	s.log.LogAction(ctx, "hire_bid", err, map[string]interface{}{"gig_id": g.ID, "bid_id": bidID})
	if err != nil {
		return models.Gig{}, nil, err
	}
	s.Browse.Replace(g.ID, updated)
	s.Mine.Replace(g.ID, updated)

	bids, _, err := s.api.ListBids(ctx, g.ID)
	if err != nil {
		// The hire itself succeeded; surface the stale bid list rather
		// than failing the whole action.
		s.log.LogAction(ctx, "refetch_bids", err, map[string]interface{}{"gig_id": g.ID})
		return updated, nil, nil
	}
	return updated, bids, nil
}

// Complete marks an in-progress gig completed. Owner only.
func (s *GigService) Complete(ctx context.Context, g models.Gig) (models.Gig, error) {
	if !g.CanComplete(s.sess.UserID()) {
		return models.Gig{}, fmt.Errorf("gig %d cannot be completed from status %s", g.ID, g.Status)
	}
	updated, err := s.api.CompleteGig(ctx, g.ID)
	s.log.LogAction(ctx, "complete_gig", err, map[string]interface{}{"gig_id": g.ID})
	if err != nil {
		return models.Gig{}, err
	}
	s.Browse.Replace(g.ID, updated)
	s.Mine.Replace(g.ID, updated)
	return updated, nil
}

// SubmitReview leaves a review on a completed gig. Eligibility: owner or
// hired bidder, at most one review per reviewer, checked against the
// existing reviews before submitting.
func (s *GigService) SubmitReview(ctx context.Context, g models.Gig, rating int, comment string) (models.Review, error) {
	userID := s.sess.UserID()
	if !g.CanReview(userID) {
		return models.Review{}, fmt.Errorf("gig %d is not reviewable by you", g.ID)
	}
	if rating < 1 || rating > 5 {
		return models.Review{}, errors.New("rating must be between 1 and 5")
	}
	reviews, _, err := s.api.ListReviews(ctx, g.ID)
	if err != nil {
		return models.Review{}, err
	}
	for _, r := range reviews {
		if r.Reviewer.ID == userID {
			return models.Review{}, ErrAlreadyReviewed
		}
	}
	review, err := s.api.CreateReview(ctx, g.ID, rating, comment)
	s.log.LogAction(ctx, "create_review", err, map[string]interface{}{"gig_id": g.ID, "rating": rating})
	return review, err
}
