package repositories

import (
	"errors"
	"fmt"

	"placeholder/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// GetAll retrieves users in id order, paginated by offset and limit.
func (r *GORMUserRepository) GetAll(offset, limit int) ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a single user by its ID.
func (r *GORMUserRepository) GetByID(id int) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return &user, nil
}

// Create inserts a new user. The caller supplies the ID; inserting an ID
// that is already present fails with ErrDuplicateID.
func (r *GORMUserRepository) Create(user *models.User) error {
	var count int64
	if err := r.db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check user %d: %w", user.ID, err)
	}
	if count > 0 {
		return fmt.Errorf("user %d: %w", user.ID, ErrDuplicateID)
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user %d: %w", user.ID, err)
	}
	return nil
}

// Update saves the full user record.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user %d: %w", user.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound on a missing row.
		return fmt.Errorf("user %d: %w", user.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a user by its ID.
func (r *GORMUserRepository) Delete(id int) error {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

// Count returns the number of stored users.
func (r *GORMUserRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

// CreateBatch inserts all users in a single transaction. Any failure rolls
// the whole batch back.
func (r *GORMUserRepository) CreateBatch(users []models.User) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return fmt.Errorf("failed to insert user %d: %w", users[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("batch insert aborted: %w", err)
	}
	return nil
}
