package models

import "time"

// GigStatus represents the lifecycle state of a gig listing.
type GigStatus string

const (
	// GigStatusOpen indicates the gig is accepting bids.
	GigStatusOpen GigStatus = "open"
	// GigStatusInProgress indicates a bidder has been hired.
	GigStatusInProgress GigStatus = "in_progress"
	// GigStatusCompleted indicates the owner marked the work done.
	GigStatusCompleted GigStatus = "completed"
)

// BidStatus represents the state of a bid against a gig.
type BidStatus string

const (
	// BidStatusPending indicates the bid awaits the owner's decision.
	BidStatusPending BidStatus = "pending"
	// BidStatusAccepted indicates the bid was hired.
	BidStatusAccepted BidStatus = "accepted"
	// BidStatusRejected indicates another bid was hired instead.
	BidStatusRejected BidStatus = "rejected"
)

// Gig represents a freelance job posting with a budget range and a bidding
// workflow. Status is monotonic: open→in_progress (on hire)→completed.
type Gig struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	BudgetMin   int       `json:"budget_min"`
	BudgetMax   int       `json:"budget_max"`
	Currency    string    `json:"currency"`
	Status      GigStatus `json:"status"`
	User        User      `json:"user"`
	HiredBid    *Bid      `json:"hired_bid,omitempty"`
	BidsCount   int       `json:"bids_count"`
	InsertedAt  time.Time `json:"inserted_at"`
}

// Bid represents a freelancer's proposal against a gig. A bid is meaningful
// only while its parent gig is open or in progress.
type Bid struct {
	ID         uint      `json:"id"`
	GigID      uint      `json:"gig_id"`
	User       User      `json:"user"`
	Amount     int       `json:"amount"`
	Message    string    `json:"message,omitempty"`
	Status     BidStatus `json:"status"`
	InsertedAt time.Time `json:"inserted_at"`
}

// Review is a post-completion rating left by the gig owner or the hired
// bidder, at most one per reviewer per gig.
type Review struct {
	ID         uint      `json:"id"`
	GigID      uint      `json:"gig_id"`
	Reviewer   User      `json:"reviewer"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	InsertedAt time.Time `json:"inserted_at"`
}

// IsOwner reports whether userID owns the gig.
func (g *Gig) IsOwner(userID uint) bool {
	return g.User.ID == userID
}

// CanBid reports whether the given user may place a bid: the gig must be
// open and the user must be authenticated and not the owner.
func (g *Gig) CanBid(userID uint, authenticated bool) bool {
	return authenticated && !g.IsOwner(userID) && g.Status == GigStatusOpen
}

// CanHire reports whether the given user may hire a bidder. Only the owner
// of an open gig can hire.
func (g *Gig) CanHire(userID uint) bool {
	return g.IsOwner(userID) && g.Status == GigStatusOpen
}

// CanComplete reports whether the given user may mark the gig completed.
// Only the owner can complete, and only while work is in progress.
func (g *Gig) CanComplete(userID uint) bool {
	return g.IsOwner(userID) && g.Status == GigStatusInProgress
}

// CanReview reports whether the given user is eligible to leave a review:
// the gig must be completed and the user must be the owner or the hired
// bidder. Callers must separately check the user has not already reviewed.
func (g *Gig) CanReview(userID uint) bool {
	if g.Status != GigStatusCompleted {
		return false
	}
	if g.IsOwner(userID) {
		return true
	}
	return g.HiredBid != nil && g.HiredBid.User.ID == userID
}
