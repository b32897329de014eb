package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"events-web-app/internal/apperror"
	"events-web-app/internal/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetAll returns every user ordered by email
func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("email ASC").Find(&users).Error
	return users, err
}

// GetByID finds a user by id
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail finds a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Add creates a new user
func (r *UserRepository) Add(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ErrUserAlreadyExists
	}
	return err
}

// Update saves every column of an existing user
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).Model(user).
		Select("*").Omit("created_at", clause.Associations).
		Updates(user)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return apperror.ErrUserAlreadyExists
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

// Delete removes a user and their attendee registrations. It reports how
// many user rows were removed.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := db.Where("user_id = ?", id).Delete(&models.Attendee{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("id = ?", id).Delete(&models.User{})
	return result.RowsAffected, result.Error
}
