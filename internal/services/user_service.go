package services

import (
	"log"

	"placeholder/internal/models"
	"placeholder/internal/repositories"
)

// EventPublisher publishes user lifecycle events. pkg/events provides the
// RabbitMQ implementation; a nil publisher disables publishing.
type EventPublisher interface {
	PublishUserEvent(eventType string, user interface{}) error
}

// UserService handles business logic for the user directory.
type UserService struct {
	repo   repositories.UserRepository
	events EventPublisher
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(repo repositories.UserRepository, events EventPublisher) *UserService {
	return &UserService{
		repo:   repo,
		events: events,
	}
}

// List retrieves users in store order, paginated by skip and limit.
func (s *UserService) List(skip, limit int) ([]models.User, error) {
	return s.repo.GetAll(skip, limit)
}

// Get retrieves a single user by its ID.
func (s *UserService) Get(id int) (*models.User, error) {
	return s.repo.GetByID(id)
}

// Create inserts a new user with its caller-supplied ID.
func (s *UserService) Create(user *models.User) error {
	if err := s.repo.Create(user); err != nil {
		return err
	}
	s.publish("user.created", user)
	return nil
}

// Replace applies a full update to an existing user. Fields absent from the
// update are left unchanged, matching the reference API's observed behavior;
// see Patch.
func (s *UserService) Replace(id int, update models.UserUpdate) (*models.User, error) {
	return s.applyUpdate(id, update)
}

// Patch applies a partial update to an existing user.
func (s *UserService) Patch(id int, update models.UserUpdate) (*models.User, error) {
	return s.applyUpdate(id, update)
}

func (s *UserService) applyUpdate(id int, update models.UserUpdate) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	update.ApplyTo(user)
	if err := s.repo.Update(user); err != nil {
		return nil, err
	}

	s.publish("user.updated", user)
	return user, nil
}

// Delete removes a user by its ID.
func (s *UserService) Delete(id int) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.publish("user.deleted", user)
	return nil
}

// Exists reports whether a user with the given ID is stored. The posts,
// todos and albums sub-resources only need the existence check; their
// response is always an empty list.
func (s *UserService) Exists(id int) error {
	_, err := s.repo.GetByID(id)
	return err
}

// publish sends a lifecycle event if a publisher is configured. Publish
// failures are logged, never surfaced to the API caller.
func (s *UserService) publish(eventType string, user *models.User) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishUserEvent(eventType, user); err != nil {
		log.Printf("Warning: failed to publish %s event for user %d: %v", eventType, user.ID, err)
	}
}
