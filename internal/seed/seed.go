// Package seed drives a development server's public API with generated
// content. Intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"makernet/internal/api"
	"makernet/internal/models"
	"makernet/internal/observability"
)

// Options controls how much content the seeder creates per account.
type Options struct {
	Posts int
	Gigs  int
	Bids  int
}

// Seeder creates fake content through the API, one authenticated client per
// account token.
type Seeder struct {
	clients []*api.Client
	rng     *rand.Rand
	log     *observability.Logger
}

// NewSeeder builds a Seeder over the given authenticated clients.
func NewSeeder(clients []*api.Client) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		clients: clients,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     observability.GlobalLogger,
	}
}

// Run seeds posts and gigs for every account, then places cross-account
// bids when more than one token is available.
func (s *Seeder) Run(ctx context.Context, opts Options) error {
	if len(s.clients) == 0 {
		return fmt.Errorf("no accounts to seed with")
	}

	var gigs []models.Gig
	for i, client := range s.clients {
		for p := 0; p < opts.Posts; p++ {
			if _, err := client.CreatePost(ctx, s.randomPostType(), gofakeit.Sentence(5), s.randomPostBody()); err != nil {
				return fmt.Errorf("account %d: create post: %w", i, err)
			}
		}
		for g := 0; g < opts.Gigs; g++ {
			gig, err := s.createGig(ctx, client)
			if err != nil {
				return fmt.Errorf("account %d: create gig: %w", i, err)
			}
			gigs = append(gigs, gig)
		}
		s.log.Info("seeded account", "account", i, "posts", opts.Posts, "gigs", opts.Gigs)
	}

	if len(s.clients) < 2 || opts.Bids == 0 {
		return nil
	}
	return s.crossBid(ctx, gigs, opts.Bids)
}

func (s *Seeder) randomPostType() models.FeedItemType {
	if s.rng.Intn(3) == 0 {
		return models.FeedItemProject
	}
	return models.FeedItemUpdate
}

func (s *Seeder) randomPostBody() string {
	return gofakeit.Paragraph(1, 3, 8, "\n")
}

func (s *Seeder) createGig(ctx context.Context, client *api.Client) (models.Gig, error) {
	min := (s.rng.Intn(20) + 1) * 50
	max := min + (s.rng.Intn(20)+1)*50
	title := fmt.Sprintf("%s %s", gofakeit.BuzzWord(), gofakeit.JobTitle())
	return client.CreateGig(ctx, title, gofakeit.Paragraph(1, 2, 10, "\n"), min, max, "USD")
}

// crossBid places bids on gigs owned by other accounts. Own gigs are
// skipped; the server rejects owner bids anyway.
func (s *Seeder) crossBid(ctx context.Context, gigs []models.Gig, perAccount int) error {
	for i, client := range s.clients {
		me, err := client.Me(ctx)
		if err != nil {
			return fmt.Errorf("account %d: me: %w", i, err)
		}
		placed := 0
		for _, gig := range gigs {
			if placed >= perAccount {
				break
			}
			if gig.User.ID == me.ID || gig.Status != models.GigStatusOpen {
				continue
			}
			amount := gig.BudgetMin + s.rng.Intn(gig.BudgetMax-gig.BudgetMin+1)
			if _, err := client.PlaceBid(ctx, gig.ID, amount, gofakeit.Phrase()); err != nil {
				return fmt.Errorf("account %d: bid on gig %d: %w", i, gig.ID, err)
			}
			placed++
		}
		s.log.Info("seeded bids", "account", i, "bids", placed)
	}
	return nil
}
