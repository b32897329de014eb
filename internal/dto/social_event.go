package dto

import (
	"time"

	"github.com/google/uuid"

	"events-web-app/internal/apperror"
	"events-web-app/internal/models"
)

// CreateSocialEventRequest is the multipart form for a new event. The image
// travels as a separate file part.
type CreateSocialEventRequest struct {
	EventName   string `form:"eventName"`
	Description string `form:"description"`
	Date        string `form:"date"`
	Category    string `form:"category"`
	Place       string `form:"place"`
	MaxAttendee int    `form:"maxAttendee"`
}

// UpdateSocialEventRequest represents the update event payload
type UpdateSocialEventRequest struct {
	ID          string `json:"id"`
	EventName   string `json:"eventName"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category"`
	Place       string `json:"place"`
	MaxAttendee int    `json:"maxAttendee"`
}

// SocialEventResponse is the public view of an event
type SocialEventResponse struct {
	ID          string    `json:"id"`
	EventName   string    `json:"eventName"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Place       string    `json:"place"`
	MaxAttendee int       `json:"maxAttendee"`
	Image       *string   `json:"image"`
}

func (r CreateSocialEventRequest) ToSocialEvent() (*models.SocialEvent, error) {
	date, err := optionalDate("date", r.Date)
	if err != nil {
		return nil, err
	}
	return &models.SocialEvent{
		EventName:   r.EventName,
		Description: r.Description,
		Date:        date,
		Category:    models.Category(r.Category),
		Place:       r.Place,
		MaxAttendee: r.MaxAttendee,
	}, nil
}

func (r UpdateSocialEventRequest) ToSocialEvent() (*models.SocialEvent, error) {
	id, idErr := ParseID("id", r.ID)
	date, dateErr := optionalDate("date", r.Date)
	if err := apperror.Merge(idErr, dateErr); err != nil {
		return nil, err
	}
	return &models.SocialEvent{
		ID:          id,
		EventName:   r.EventName,
		Description: r.Description,
		Date:        date,
		Category:    models.Category(r.Category),
		Place:       r.Place,
		MaxAttendee: r.MaxAttendee,
	}, nil
}

func ToSocialEventResponse(event models.SocialEvent) SocialEventResponse {
	return SocialEventResponse{
		ID:          event.ID.String(),
		EventName:   event.EventName,
		Description: event.Description,
		Date:        event.Date.UTC(),
		Category:    string(event.Category),
		Place:       event.Place,
		MaxAttendee: event.MaxAttendee,
		Image:       event.Image,
	}
}

func ToSocialEventResponses(events []models.SocialEvent) []SocialEventResponse {
	out := make([]SocialEventResponse, len(events))
	for i, e := range events {
		out[i] = ToSocialEventResponse(e)
	}
	return out
}

// ToSocialEventPage maps a page of events, keeping its metadata
func ToSocialEventPage(page models.PaginatedList[models.SocialEvent]) models.PaginatedList[SocialEventResponse] {
	return models.MapPaginatedList(page, ToSocialEventResponse)
}

// IDResponse reports the id of a created or changed entity
type IDResponse struct {
	ID string `json:"id"`
}

func NewIDResponse(id uuid.UUID) IDResponse {
	return IDResponse{ID: id.String()}
}
