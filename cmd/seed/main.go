// Command seed populates a development server with generated content
// through the public API.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"makernet/internal/api"
	"makernet/internal/config"
	"makernet/internal/seed"
)

func main() {
	numPosts := flag.Int("posts", 10, "Posts to create per account")
	numGigs := flag.Int("gigs", 3, "Gigs to create per account")
	numBids := flag.Int("bids", 2, "Bids to place per account on other accounts' gigs")
	tokenFile := flag.String("tokens", "", "File with one API token per line (defaults to the configured token)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tokens, err := loadTokens(cfg, *tokenFile)
	if err != nil {
		log.Fatalf("Failed to load tokens: %v", err)
	}
	if len(tokens) == 0 {
		log.Fatal("No API tokens available; set API_TOKEN or pass --tokens")
	}

	clients := make([]*api.Client, 0, len(tokens))
	for _, token := range tokens {
		clients = append(clients, api.New(cfg.APIBaseURL,
			api.WithToken(token),
			api.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second),
		))
	}

	log.Printf("Seeding %d account(s): %d posts, %d gigs, %d bids each", len(tokens), *numPosts, *numGigs, *numBids)

	s := seed.NewSeeder(clients)
	if err := s.Run(context.Background(), seed.Options{
		Posts: *numPosts,
		Gigs:  *numGigs,
		Bids:  *numBids,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}

func loadTokens(cfg *config.Config, tokenFile string) ([]string, error) {
	if tokenFile == "" {
		if cfg.APIToken == "" {
			return nil, nil
		}
		return []string{cfg.APIToken}, nil
	}
	b, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, err
	}
	var tokens []string
	for _, line := range strings.Split(string(b), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			tokens = append(tokens, line)
		}
	}
	return tokens, nil
}
