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

type AttendeeRepository struct {
	db *gorm.DB
}

func NewAttendeeRepo(db *gorm.DB) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

// GetAll retrieves all attendees
func (r *AttendeeRepository) GetAll(ctx context.Context) ([]models.Attendee, error) {
	var attendees []models.Attendee
	err := r.db.WithContext(ctx).
		Order("date_of_registration ASC, id ASC").
		Find(&attendees).Error
	return attendees, err
}

// GetByID retrieves an attendee by ID
func (r *AttendeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Attendee, error) {
	var attendee models.Attendee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&attendee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrAttendeeNotFound
		}
		return nil, err
	}
	return &attendee, nil
}

// GetByIDWithInclude retrieves an attendee with its social event and user preloaded
func (r *AttendeeRepository) GetByIDWithInclude(ctx context.Context, id uuid.UUID) (*models.Attendee, error) {
	var attendee models.Attendee
	err := r.db.WithContext(ctx).
		Preload("SocialEvent").
		Preload("User").
		Where("id = ?", id).
		First(&attendee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrAttendeeNotFound
		}
		return nil, err
	}
	return &attendee, nil
}

// GetBySocialEvent retrieves every attendee of one social event
func (r *AttendeeRepository) GetBySocialEvent(ctx context.Context, socialEventID uuid.UUID) ([]models.Attendee, error) {
	var attendees []models.Attendee
	err := r.db.WithContext(ctx).
		Where("social_event_id = ?", socialEventID).
		Order("surname ASC, name ASC, id ASC").
		Find(&attendees).Error
	return attendees, err
}

// Exists reports whether the user is already registered for the event
func (r *AttendeeRepository) Exists(ctx context.Context, userID, socialEventID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Attendee{}).
		Where("user_id = ? AND social_event_id = ?", userID, socialEventID).
		Count(&count).Error
	return count > 0, err
}

// Add creates a new attendee
func (r *AttendeeRepository) Add(ctx context.Context, attendee *models.Attendee) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(attendee).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ErrAlreadyRegistered
	}
	return err
}

// Update saves every column of an existing attendee
func (r *AttendeeRepository) Update(ctx context.Context, attendee *models.Attendee) error {
	result := r.db.WithContext(ctx).Model(attendee).
		Select("*").Omit(clause.Associations).
		Updates(attendee)
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return apperror.ErrAlreadyRegistered
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrAttendeeNotFound
	}
	return nil
}

// Delete removes an attendee and reports how many rows were removed
func (r *AttendeeRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Attendee{})
	return result.RowsAffected, result.Error
}
