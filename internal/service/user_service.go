package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"events-web-app/internal/apperror"
	"events-web-app/internal/models"
	"events-web-app/internal/repository"
)

// GetAllUsers retrieves all users
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		var err error
		users, err = store.Users.GetAll(ctx)
		return err
	})
	return users, err
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user *models.User
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		var err error
		user, err = store.Users.GetByID(ctx, id)
		return err
	})
	return user, err
}

// GetUserByEmail retrieves a user by email
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, apperror.NewValidationError("query parameter 'email' is required")
	}

	var user *models.User
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		var err error
		user, err = store.Users.GetByEmail(ctx, email)
		return err
	})
	return user, err
}

// UpdateUser changes the email, username and role of an existing user.
// Credentials and refresh token are kept from the stored row.
func (s *UserService) UpdateUser(ctx context.Context, changes *models.User) (uuid.UUID, error) {
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		user, err := store.Users.GetByID(ctx, changes.ID)
		if err != nil {
			return err
		}

		if changes.Email != user.Email {
			other, err := store.Users.GetByEmail(ctx, changes.Email)
			if err == nil && other.ID != user.ID {
				return apperror.ErrUserAlreadyExists
			}
			if err != nil && !apperror.IsNotFound(err) {
				return err
			}
		}

		user.Email = changes.Email
		user.Username = changes.Username
		user.Role = changes.Role
		if err := s.validate.Struct(user); err != nil {
			return err
		}

		if err := store.Users.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		return store.Audit.CreateAuditLog(ctx, &user.ID, "user_update",
			fmt.Sprintf("User %s updated (role %s)", user.Email, user.Role))
	})
	if err != nil {
		return uuid.Nil, err
	}
	return changes.ID, nil
}

// DeleteUser removes a user together with their registrations
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		rows, err := store.Users.Delete(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperror.ErrUserNotFound
		}
		return store.Audit.CreateAuditLog(ctx, nil, "user_delete", fmt.Sprintf("User %s deleted", id))
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.Info("User deleted", zap.String("user_id", id.String()))
	return id, nil
}
