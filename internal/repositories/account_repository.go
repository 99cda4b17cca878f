package repositories

import "placeholder/internal/models"

// AccountRepository defines the interface for authentication identity access.
// Accounts are created on registration and never updated or deleted.
type AccountRepository interface {
	Create(account *models.Account) error
	GetByEmail(email string) (*models.Account, error)
}
