package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"events-web-app/internal/apperror"
	"events-web-app/internal/models"
)

// SocialEventFilter narrows a social event search. Zero fields are ignored.
type SocialEventFilter struct {
	NameContains string
	Day          *time.Time
	Category     models.Category
	Place        string
}

type SocialEventRepository struct {
	db *gorm.DB
}

func NewSocialEventRepo(db *gorm.DB) *SocialEventRepository {
	return &SocialEventRepository{db: db}
}

// ordered applies the listing order shared by every query. The id keeps the
// order total so pages never overlap.
func ordered(db *gorm.DB) *gorm.DB {
	return db.Order("date ASC").Order("event_name ASC").Order("id ASC")
}

// GetPage returns one page of social events and the total count
func (r *SocialEventRepository) GetPage(ctx context.Context, pageIndex, pageSize int) ([]models.SocialEvent, int64, error) {
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.SocialEvent{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.SocialEvent
	err := ordered(db).
		Offset((pageIndex - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

// GetByID retrieves a social event by ID
func (r *SocialEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SocialEvent, error) {
	var event models.SocialEvent
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrSocialEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// Search returns every social event matching the filter
func (r *SocialEventRepository) Search(ctx context.Context, filter SocialEventFilter) ([]models.SocialEvent, error) {
	query := r.db.WithContext(ctx).Model(&models.SocialEvent{})

	if filter.NameContains != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.NameContains)) + "%"
		query = query.Where("LOWER(event_name) LIKE ? ESCAPE '!'", pattern)
	}
	if filter.Day != nil {
		start := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, time.UTC)
		query = query.Where("date >= ? AND date < ?", start, start.AddDate(0, 0, 1))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Place != "" {
		query = query.Where("place = ?", filter.Place)
	}

	var events []models.SocialEvent
	err := ordered(query).Find(&events).Error
	return events, err
}

// CountAttendees returns how many attendees are registered for the event
func (r *SocialEventRepository) CountAttendees(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Attendee{}).
		Where("social_event_id = ?", id).
		Count(&count).Error
	return count, err
}

// Add creates a new social event
func (r *SocialEventRepository) Add(ctx context.Context, event *models.SocialEvent) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

// Update saves every column of an existing social event
func (r *SocialEventRepository) Update(ctx context.Context, event *models.SocialEvent) error {
	result := r.db.WithContext(ctx).Model(event).
		Select("*").Omit("created_at", clause.Associations).
		Updates(event)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.ErrSocialEventNotFound
	}
	return nil
}

// Delete removes a social event together with its attendees. It reports how
// many event rows were removed.
func (r *SocialEventRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := db.Where("social_event_id = ?", id).Delete(&models.Attendee{}).Error; err != nil {
		return 0, err
	}
	result := db.Where("id = ?", id).Delete(&models.SocialEvent{})
	return result.RowsAffected, result.Error
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
