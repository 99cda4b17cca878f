// Package seeder populates the user store on process start, before the
// server begins accepting connections.
package seeder

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"placeholder/internal/models"
	"placeholder/internal/repositories"
)

// DefaultSourceURL is the reference dataset fetched on first start.
const DefaultSourceURL = "https://jsonplaceholder.typicode.com/users"

// Seeder populates an empty user store from a remote reference dataset,
// falling back to a small built-in dataset when the remote is unreachable.
type Seeder struct {
	repo      repositories.UserRepository
	client    *http.Client
	sourceURL string
}

// New creates a Seeder. The timeout bounds the single fetch of the
// reference dataset.
func New(repo repositories.UserRepository, sourceURL string, timeout time.Duration) *Seeder {
	return &Seeder{
		repo:      repo,
		client:    &http.Client{Timeout: timeout},
		sourceURL: sourceURL,
	}
}

// Run seeds the store once. A non-empty store is left untouched. A fetch
// failure falls back to the built-in dataset; an insert failure rolls the
// whole batch back and leaves the store empty.
func (s *Seeder) Run() error {
	count, err := s.repo.Count()
	if err != nil {
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if count > 0 {
		log.Printf("Store already contains %d users. Skipping seed.", count)
		return nil
	}

	users, err := s.fetch()
	if err != nil {
		log.Printf("Error fetching seed data from %s: %v. Using fallback dataset.", s.sourceURL, err)
		users = FallbackUsers()
	}

	if err := s.repo.CreateBatch(users); err != nil {
		return fmt.Errorf("seeding aborted: %w", err)
	}

	log.Printf("Successfully seeded store with %d users.", len(users))
	return nil
}

// fetch retrieves the reference dataset. The records are inserted verbatim,
// trusting the remote schema.
func (s *Seeder) fetch() ([]models.User, error) {
	resp, err := s.client.Get(s.sourceURL)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	var users []models.User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}
	return users, nil
}

// FallbackUsers returns the fixed dataset used when the reference API is
// unavailable.
func FallbackUsers() []models.User {
	return []models.User{
		{
			ID:       1,
			Name:     "Leanne Graham",
			Username: "Bret",
			Email:    "Sincere@april.biz",
			Address: models.Address{
				Street:  "Kulas Light",
				Suite:   "Apt. 556",
				City:    "Gwenborough",
				Zipcode: "92998-3874",
				Geo:     models.Geo{Lat: "-37.3159", Lng: "81.1496"},
			},
			Phone:   "1-770-736-8031 x56442",
			Website: "hildegard.org",
			Company: models.Company{
				Name:        "Romaguera-Crona",
				CatchPhrase: "Multi-layered client-server neural-net",
				BS:          "harness real-time e-markets",
			},
		},
		{
			ID:       2,
			Name:     "Ervin Howell",
			Username: "Antonette",
			Email:    "Shanna@melissa.tv",
			Address: models.Address{
				Street:  "Victor Plains",
				Suite:   "Suite 879",
				City:    "Wisokyburgh",
				Zipcode: "90566-7771",
				Geo:     models.Geo{Lat: "-43.9509", Lng: "-34.4618"},
			},
			Phone:   "010-692-6593 x09125",
			Website: "anastasia.net",
			Company: models.Company{
				Name:        "Deckow-Crist",
				CatchPhrase: "Proactive didactic contingency",
				BS:          "synergize scalable supply-chains",
			},
		},
		{
			ID:       3,
			Name:     "Clementine Bauch",
			Username: "Samantha",
			Email:    "Nathan@yesenia.net",
			Address: models.Address{
				Street:  "Douglas Extension",
				Suite:   "Suite 847",
				City:    "McKenziehaven",
				Zipcode: "59590-4157",
				Geo:     models.Geo{Lat: "-68.6102", Lng: "-47.0653"},
			},
			Phone:   "1-463-123-4447",
			Website: "ramiro.info",
			Company: models.Company{
				Name:        "Romaguera-Jacobson",
				CatchPhrase: "Face to face bifurcated interface",
				BS:          "e-enable strategic applications",
			},
		},
	}
}
