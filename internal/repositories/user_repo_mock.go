package repositories

import (
	"fmt"
	"sort"
	"sync"

	"placeholder/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[int]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[int]models.User),
	}
}

// GetAll returns users in id order, paginated by offset and limit.
func (r *MockUserRepository) GetAll(offset, limit int) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return []models.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// GetByID returns a user by its ID.
func (r *MockUserRepository) GetByID(id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return &user, nil
}

// Create adds a new user, failing on a duplicate ID.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("user %d: %w", user.ID, ErrDuplicateID)
	}
	r.users[user.ID] = *user
	return nil
}

// Update replaces an existing user record.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user %d: %w", user.ID, ErrNotFound)
	}
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user by its ID.
func (r *MockUserRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

// Count returns the number of stored users.
func (r *MockUserRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// CreateBatch inserts all users or none of them.
func (r *MockUserRepository) CreateBatch(users []models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	staged := make(map[int]models.User, len(users))
	for _, u := range users {
		if _, ok := r.users[u.ID]; ok {
			return fmt.Errorf("batch insert aborted: user %d: %w", u.ID, ErrDuplicateID)
		}
		if _, ok := staged[u.ID]; ok {
			return fmt.Errorf("batch insert aborted: user %d: %w", u.ID, ErrDuplicateID)
		}
		staged[u.ID] = u
	}
	for id, u := range staged {
		r.users[id] = u
	}
	return nil
}
