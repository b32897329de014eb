package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"events-web-app/internal/apperror"
	"events-web-app/internal/models"
	"events-web-app/internal/repository"
	"events-web-app/internal/validator"
)

const maxPageSize = 100

// ImageStore keeps uploaded event images
type ImageStore interface {
	// Store saves data and returns the relative path recorded on the event
	Store(filename string, data []byte) (string, error)
	Delete(path string) error
}

// ImageUpload is an image file received with a request
type ImageUpload struct {
	Filename string
	Data     []byte
}

type SocialEventService struct {
	uow      repository.UnitOfWork
	images   ImageStore
	validate *validator.Validator
	log      *zap.Logger
}

func NewSocialEventService(uow repository.UnitOfWork, images ImageStore, validate *validator.Validator, log *zap.Logger) *SocialEventService {
	return &SocialEventService{
		uow:      uow,
		images:   images,
		validate: validate,
		log:      log.Named("social_event_service"),
	}
}

// GetAllSocialEvents returns one page of social events ordered by date, name and id
func (s *SocialEventService) GetAllSocialEvents(ctx context.Context, pageIndex, pageSize int) (models.PaginatedList[models.SocialEvent], error) {
	var page models.PaginatedList[models.SocialEvent]

	if err := apperror.Merge(
		s.validate.Var("pageIndex", pageIndex, "gte=1"),
		s.validate.Var("pageSize", pageSize, fmt.Sprintf("gte=1,lte=%d", maxPageSize)),
	); err != nil {
		return page, err
	}

	err := s.uow.Do(ctx, func(store *repository.Store) error {
		events, total, err := store.SocialEvents.GetPage(ctx, pageIndex, pageSize)
		if err != nil {
			return err
		}
		page = models.NewPaginatedList(events, pageIndex, pageSize, total)
		return nil
	})
	return page, err
}

// GetSocialEventByID retrieves a social event by ID
func (s *SocialEventService) GetSocialEventByID(ctx context.Context, id uuid.UUID) (*models.SocialEvent, error) {
	var event *models.SocialEvent
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		var err error
		event, err = store.SocialEvents.GetByID(ctx, id)
		return err
	})
	return event, err
}

// GetSocialEventsByName returns events whose name contains name
func (s *SocialEventService) GetSocialEventsByName(ctx context.Context, name string) ([]models.SocialEvent, error) {
	name = strings.TrimSpace(name)
	if err := s.validate.Var("name", name, "required"); err != nil {
		return nil, err
	}
	return s.search(ctx, repository.SocialEventFilter{NameContains: name})
}

// GetSocialEventsByDate returns events taking place on the same UTC day as date
func (s *SocialEventService) GetSocialEventsByDate(ctx context.Context, date time.Time) ([]models.SocialEvent, error) {
	if date.IsZero() {
		return nil, apperror.NewValidationError("field 'date' is required")
	}
	day := date.UTC()
	return s.search(ctx, repository.SocialEventFilter{Day: &day})
}

// GetSocialEventsByCategory returns events of one category
func (s *SocialEventService) GetSocialEventsByCategory(ctx context.Context, category models.Category) ([]models.SocialEvent, error) {
	if err := s.validate.Var("category", string(category), "required,category"); err != nil {
		return nil, err
	}
	return s.search(ctx, repository.SocialEventFilter{Category: category})
}

// GetSocialEventsByPlace returns events held at place
func (s *SocialEventService) GetSocialEventsByPlace(ctx context.Context, place string) ([]models.SocialEvent, error) {
	place = strings.TrimSpace(place)
	if err := s.validate.Var("place", place, "required"); err != nil {
		return nil, err
	}
	return s.search(ctx, repository.SocialEventFilter{Place: place})
}

func (s *SocialEventService) search(ctx context.Context, filter repository.SocialEventFilter) ([]models.SocialEvent, error) {
	var events []models.SocialEvent
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		var err error
		events, err = store.SocialEvents.Search(ctx, filter)
		return err
	})
	return events, err
}

// CreateSocialEvent validates and stores a new event with an optional image
func (s *SocialEventService) CreateSocialEvent(ctx context.Context, event *models.SocialEvent, image *ImageUpload, actorID *uuid.UUID) (uuid.UUID, error) {
	event.Date = event.Date.UTC()
	event.Image = nil
	if err := s.validate.Struct(event); err != nil {
		return uuid.Nil, err
	}

	if image != nil {
		path, err := s.images.Store(image.Filename, image.Data)
		if err != nil {
			return uuid.Nil, err
		}
		event.Image = &path
	}

	err := s.uow.Do(ctx, func(store *repository.Store) error {
		if err := store.SocialEvents.Add(ctx, event); err != nil {
			return fmt.Errorf("failed to create social event: %w", err)
		}
		return store.Audit.CreateAuditLog(ctx, actorID, "social_event_create",
			fmt.Sprintf("Social event %s created", event.EventName))
	})
	if err != nil {
		s.discardImage(event.Image)
		return uuid.Nil, err
	}

	s.log.Info("Social event created", zap.String("social_event_id", event.ID.String()))
	return event.ID, nil
}

// UpdateSocialEvent replaces the fields of an existing event. The stored
// image is kept and the capacity may not drop below the registered attendees.
func (s *SocialEventService) UpdateSocialEvent(ctx context.Context, event *models.SocialEvent, actorID *uuid.UUID) (uuid.UUID, error) {
	event.Date = event.Date.UTC()
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		stored, err := store.SocialEvents.GetByID(ctx, event.ID)
		if err != nil {
			return err
		}
		event.Image = stored.Image
		event.CreatedAt = stored.CreatedAt

		if err := s.validate.Struct(event); err != nil {
			return err
		}

		registered, err := store.SocialEvents.CountAttendees(ctx, event.ID)
		if err != nil {
			return err
		}
		if int64(event.MaxAttendee) < registered {
			return apperror.NewValidationError(fmt.Sprintf(
				"field 'maxAttendee' must be at least %d, the number of registered attendees", registered))
		}

		if err := store.SocialEvents.Update(ctx, event); err != nil {
			return err
		}
		return store.Audit.CreateAuditLog(ctx, actorID, "social_event_update",
			fmt.Sprintf("Social event %s updated", event.ID))
	})
	if err != nil {
		return uuid.Nil, err
	}
	return event.ID, nil
}

// ReplaceImage stores a new image for the event and removes the previous one
func (s *SocialEventService) ReplaceImage(ctx context.Context, id uuid.UUID, image ImageUpload, actorID *uuid.UUID) (string, error) {
	path, err := s.images.Store(image.Filename, image.Data)
	if err != nil {
		return "", err
	}

	var previous *string
	err = s.uow.Do(ctx, func(store *repository.Store) error {
		event, err := store.SocialEvents.GetByID(ctx, id)
		if err != nil {
			return err
		}
		previous = event.Image
		event.Image = &path

		if err := store.SocialEvents.Update(ctx, event); err != nil {
			return err
		}
		return store.Audit.CreateAuditLog(ctx, actorID, "social_event_image",
			fmt.Sprintf("Social event %s image replaced", id))
	})
	if err != nil {
		s.discardImage(&path)
		return "", err
	}

	s.discardImage(previous)
	return path, nil
}

// DeleteSocialEvent removes an event, its attendees and its image
func (s *SocialEventService) DeleteSocialEvent(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (uuid.UUID, error) {
	var image *string
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		event, err := store.SocialEvents.GetByID(ctx, id)
		if err != nil {
			return err
		}
		image = event.Image

		rows, err := store.SocialEvents.Delete(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperror.ErrSocialEventNotFound
		}
		return store.Audit.CreateAuditLog(ctx, actorID, "social_event_delete",
			fmt.Sprintf("Social event %s deleted", id))
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.discardImage(image)
	return id, nil
}

// discardImage removes a stored file. A failure leaves an orphan file
// behind, which is logged and not reported to the caller.
func (s *SocialEventService) discardImage(path *string) {
	if path == nil || *path == "" {
		return
	}
	if err := s.images.Delete(*path); err != nil {
		s.log.Warn("Failed to remove image", zap.String("path", *path), zap.Error(err))
	}
}
