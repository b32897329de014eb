package dto

import (
	"time"

	"github.com/google/uuid"

	"events-web-app/internal/apperror"
	"events-web-app/internal/models"
)

// CreateAttendeeRequest registers the caller for an event
type CreateAttendeeRequest struct {
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	Email         string `json:"email"`
	DateOfBirth   string `json:"dateOfBirth"`
	SocialEventID string `json:"socialEventId"`
}

// UpdateAttendeeRequest represents the update attendee payload. The event
// and user ids are accepted for client compatibility and never applied.
type UpdateAttendeeRequest struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Surname       string `json:"surname"`
	Email         string `json:"email"`
	DateOfBirth   string `json:"dateOfBirth"`
	SocialEventID string `json:"socialEventId,omitempty"`
	UserID        string `json:"userId,omitempty"`
}

// AttendeeResponse is the public view of an attendee
type AttendeeResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Surname            string    `json:"surname"`
	Email              string    `json:"email"`
	DateOfBirth        time.Time `json:"dateOfBirth"`
	DateOfRegistration time.Time `json:"dateOfRegistration"`
	SocialEventID      string    `json:"socialEventId"`
	UserID             string    `json:"userId"`
}

// ToAttendee maps the request for the given caller
func (r CreateAttendeeRequest) ToAttendee(userID uuid.UUID) (*models.Attendee, error) {
	eventID, idErr := ParseID("socialEventId", r.SocialEventID)
	dob, dateErr := optionalDate("dateOfBirth", r.DateOfBirth)
	if err := apperror.Merge(idErr, dateErr); err != nil {
		return nil, err
	}
	return &models.Attendee{
		Name:          r.Name,
		Surname:       r.Surname,
		Email:         r.Email,
		DateOfBirth:   dob,
		SocialEventID: eventID,
		UserID:        userID,
	}, nil
}

// ToAttendee maps the editable fields only
func (r UpdateAttendeeRequest) ToAttendee() (*models.Attendee, error) {
	id, idErr := ParseID("id", r.ID)
	dob, dateErr := optionalDate("dateOfBirth", r.DateOfBirth)
	if err := apperror.Merge(idErr, dateErr); err != nil {
		return nil, err
	}
	return &models.Attendee{
		ID:          id,
		Name:        r.Name,
		Surname:     r.Surname,
		Email:       r.Email,
		DateOfBirth: dob,
	}, nil
}

func ToAttendeeResponse(a models.Attendee) AttendeeResponse {
	return AttendeeResponse{
		ID:                 a.ID.String(),
		Name:               a.Name,
		Surname:            a.Surname,
		Email:              a.Email,
		DateOfBirth:        a.DateOfBirth.UTC(),
		DateOfRegistration: a.DateOfRegistration.UTC(),
		SocialEventID:      a.SocialEventID.String(),
		UserID:             a.UserID.String(),
	}
}

func ToAttendeeResponses(attendees []models.Attendee) []AttendeeResponse {
	out := make([]AttendeeResponse, len(attendees))
	for i, a := range attendees {
		out[i] = ToAttendeeResponse(a)
	}
	return out
}
