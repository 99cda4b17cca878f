package repositories

import (
	"errors"
	"fmt"

	"placeholder/internal/models"

	"gorm.io/gorm"
)

// GORMAccountRepository is a GORM implementation of AccountRepository.
type GORMAccountRepository struct {
	db *gorm.DB
}

// NewGORMAccountRepository creates a new instance of GORMAccountRepository.
func NewGORMAccountRepository(db *gorm.DB) *GORMAccountRepository {
	return &GORMAccountRepository{
		db: db,
	}
}

// Create inserts a new account, failing with ErrEmailTaken on a duplicate
// email.
func (r *GORMAccountRepository) Create(account *models.Account) error {
	var count int64
	if err := r.db.Model(&models.Account{}).Where("email = ?", account.Email).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check account email %s: %w", account.Email, err)
	}
	if count > 0 {
		return fmt.Errorf("account %s: %w", account.Email, ErrEmailTaken)
	}
	if err := r.db.Create(account).Error; err != nil {
		return fmt.Errorf("failed to create account %s: %w", account.Email, err)
	}
	return nil
}

// GetByEmail retrieves an account by its email.
func (r *GORMAccountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account %s: %w", email, err)
	}
	return &account, nil
}
