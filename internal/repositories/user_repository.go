package repositories

import "placeholder/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	GetAll(offset, limit int) ([]models.User, error)
	GetByID(id int) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id int) error
	Count() (int64, error)
	CreateBatch(users []models.User) error
}
