package repositories

import (
	"fmt"
	"sync"

	"placeholder/internal/models"
)

// MockAccountRepository is an in-memory implementation of AccountRepository.
type MockAccountRepository struct {
	accounts map[string]models.Account // keyed by email
	nextID   uint
	mu       sync.RWMutex
}

// NewMockAccountRepository creates a new instance of MockAccountRepository.
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]models.Account),
		nextID:   1,
	}
}

// Create adds a new account, failing on a duplicate email.
func (r *MockAccountRepository) Create(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Email]; ok {
		return fmt.Errorf("account %s: %w", account.Email, ErrEmailTaken)
	}
	account.ID = r.nextID
	r.nextID++
	r.accounts[account.Email] = *account
	return nil
}

// GetByEmail returns an account by its email.
func (r *MockAccountRepository) GetByEmail(email string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[email]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", email, ErrNotFound)
	}
	return &account, nil
}
