package service

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"

	"user-service/internal/auth"
	"user-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// ErrMissingPassword is returned when a user is created without a password.
var ErrMissingPassword = errors.New("missing password")

// UserStore is the persistence surface the service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id int) (*entity.User, error)
	GetAllUsers(ctx context.Context) ([]entity.User, error)
	UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// UserCache caches users by id. Nil disables caching.
type UserCache interface {
	Get(ctx context.Context, id int) (*entity.User, bool)
	Set(ctx context.Context, user *entity.User)
	Invalidate(ctx context.Context, id int)
}

// EventPublisher emits user lifecycle events. Nil disables publishing.
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, user *entity.User, action string) error
}

// UserService provides user CRUD on top of the repository, with a
// read-through cache and lifecycle events.
type UserService struct {
	repo   UserStore
	hasher *auth.Hasher
	cache  UserCache
	events EventPublisher
}

// NewUserService creates a new instance of UserService. cache and events may
// be nil.
func NewUserService(repo UserStore, hasher *auth.Hasher, cache UserCache, events EventPublisher) *UserService {
	return &UserService{repo: repo, hasher: hasher, cache: cache, events: events}
}

// CreateUser hashes the supplied password and stores the new user.
func (s *UserService) CreateUser(ctx context.Context, user *entity.User, password string) (*entity.User, error) {
	if password == "" {
		return nil, ErrMissingPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing password")
		return nil, err
	}
	user.PasswordHash = hash

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, err
	}

	s.publish(ctx, createdUser, "created")

	return createdUser, nil
}

// GetUserByID retrieves a user, from cache when possible.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	if s.cache != nil {
		if user, ok := s.cache.Get(ctx, id); ok {
			return user, nil
		}
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting user by ID %d", id)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, user)
	}

	return user, nil
}

// GetAllUsers retrieves every user.
func (s *UserService) GetAllUsers(ctx context.Context) ([]entity.User, error) {
	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error getting all users")
		return nil, err
	}

	return users, nil
}

// UpdateUser updates an existing user's profile fields. The password is not
// touched here.
func (s *UserService) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	updatedUser, err := s.repo.UpdateUser(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msgf("Error updating user %d", user.ID)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, updatedUser.ID)
	}
	s.publish(ctx, updatedUser, "updated")

	return updatedUser, nil
}

// DeleteUser removes a user.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteUser(ctx, id); err != nil {
		logger.Error().Err(err).Msgf("Error deleting user %d", id)
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	s.publish(ctx, user, "deleted")

	return nil
}

// publish emits a lifecycle event best-effort; a broker failure does not
// fail the request.
func (s *UserService) publish(ctx context.Context, user *entity.User, action string) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishUserEvent(ctx, user, action); err != nil {
		logger.Error().Err(err).Msgf("Error publishing user %s event for user %d", action, user.ID)
	}
}
