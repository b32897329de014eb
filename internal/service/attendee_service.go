package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"events-web-app/internal/apperror"
	"events-web-app/internal/models"
	"events-web-app/internal/repository"
	"events-web-app/internal/validator"
)

type AttendeeService struct {
	uow      repository.UnitOfWork
	validate *validator.Validator
	log      *zap.Logger
	now      func() time.Time
}

func NewAttendeeService(uow repository.UnitOfWork, validate *validator.Validator, log *zap.Logger) *AttendeeService {
	return &AttendeeService{
		uow:      uow,
		validate: validate,
		log:      log.Named("attendee_service"),
		now:      time.Now,
	}
}

// GetAllAttendees retrieves all attendees
func (s *AttendeeService) GetAllAttendees(ctx context.Context) ([]models.Attendee, error) {
	var attendees []models.Attendee
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		var err error
		attendees, err = store.Attendees.GetAll(ctx)
		return err
	})
	return attendees, err
}

// GetAttendeeByID retrieves an attendee by ID
func (s *AttendeeService) GetAttendeeByID(ctx context.Context, id uuid.UUID) (*models.Attendee, error) {
	var attendee *models.Attendee
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		var err error
		attendee, err = store.Attendees.GetByID(ctx, id)
		return err
	})
	return attendee, err
}

// GetAttendeesBySocialEvent lists the attendees of an existing social event
func (s *AttendeeService) GetAttendeesBySocialEvent(ctx context.Context, socialEventID uuid.UUID) ([]models.Attendee, error) {
	var attendees []models.Attendee
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		if _, err := store.SocialEvents.GetByID(ctx, socialEventID); err != nil {
			return err
		}
		var err error
		attendees, err = store.Attendees.GetBySocialEvent(ctx, socialEventID)
		return err
	})
	return attendees, err
}

// RegisterAttendee registers a user for a social event while it has free places
func (s *AttendeeService) RegisterAttendee(ctx context.Context, attendee *models.Attendee) (uuid.UUID, error) {
	attendee.DateOfBirth = attendee.DateOfBirth.UTC()
	attendee.DateOfRegistration = s.now().UTC()
	if err := s.validate.Struct(attendee); err != nil {
		return uuid.Nil, err
	}

	err := s.uow.Do(ctx, func(store *repository.Store) error {
		event, err := store.SocialEvents.GetByID(ctx, attendee.SocialEventID)
		if err != nil {
			return err
		}
		if _, err := store.Users.GetByID(ctx, attendee.UserID); err != nil {
			return err
		}

		registered, err := store.Attendees.Exists(ctx, attendee.UserID, attendee.SocialEventID)
		if err != nil {
			return err
		}
		if registered {
			return apperror.ErrAlreadyRegistered
		}

		count, err := store.SocialEvents.CountAttendees(ctx, event.ID)
		if err != nil {
			return err
		}
		if count >= int64(event.MaxAttendee) {
			return apperror.ErrSocialEventFull
		}

		if err := store.Attendees.Add(ctx, attendee); err != nil {
			return fmt.Errorf("failed to register attendee: %w", err)
		}
		return store.Audit.CreateAuditLog(ctx, &attendee.UserID, "attendee_register",
			fmt.Sprintf("Registered for social event %s", event.ID))
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.Info("Attendee registered",
		zap.String("attendee_id", attendee.ID.String()),
		zap.String("social_event_id", attendee.SocialEventID.String()),
	)
	return attendee.ID, nil
}

// UpdateAttendee changes the personal details of an attendee. The social
// event, the user and the registration date always come from the stored row.
// Only the owning user or an Admin may edit a registration.
func (s *AttendeeService) UpdateAttendee(ctx context.Context, changes *models.Attendee, actorID *uuid.UUID, roles models.Roles) (uuid.UUID, error) {
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		candidate, err := store.Attendees.GetByIDWithInclude(ctx, changes.ID)
		if err != nil {
			return err
		}
		if !roles.Has(models.RoleAdmin) && (actorID == nil || *actorID != candidate.UserID) {
			return apperror.ErrNotAttendeeOwner
		}

		attendee := &models.Attendee{
			ID:                 candidate.ID,
			Name:               changes.Name,
			Surname:            changes.Surname,
			Email:              changes.Email,
			DateOfBirth:        changes.DateOfBirth.UTC(),
			DateOfRegistration: candidate.DateOfRegistration,
			SocialEventID:      candidate.SocialEventID,
			SocialEvent:        candidate.SocialEvent,
			UserID:             candidate.UserID,
			User:               candidate.User,
		}
		if err := s.validate.Struct(attendee); err != nil {
			return err
		}

		if err := store.Attendees.Update(ctx, attendee); err != nil {
			return err
		}
		return store.Audit.CreateAuditLog(ctx, actorID, "attendee_update",
			fmt.Sprintf("Attendee %s updated", attendee.ID))
	})
	if err != nil {
		return uuid.Nil, err
	}
	return changes.ID, nil
}

// DeleteAttendee removes a registration
func (s *AttendeeService) DeleteAttendee(ctx context.Context, id uuid.UUID, actorID *uuid.UUID) (uuid.UUID, error) {
	err := s.uow.Do(ctx, func(store *repository.Store) error {
		rows, err := store.Attendees.Delete(ctx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperror.ErrAttendeeNotFound
		}
		return store.Audit.CreateAuditLog(ctx, actorID, "attendee_delete",
			fmt.Sprintf("Attendee %s deleted", id))
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
