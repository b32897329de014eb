package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attendee links a user to a social event. A user registers for a given
// event at most once.
type Attendee struct {
	ID                 uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name               string    `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Surname            string    `gorm:"size:100;not null" json:"surname" validate:"required,max=100"`
	Email              string    `gorm:"size:191;not null" json:"email" validate:"required,email,max=191"`
	DateOfBirth        time.Time `gorm:"not null" json:"dateOfBirth" validate:"required,pastdate"`
	DateOfRegistration time.Time `gorm:"not null" json:"dateOfRegistration" validate:"required"`
	SocialEventID      uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_attendee_user_event,priority:2" json:"socialEventId" validate:"required"`
	UserID             uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_attendee_user_event,priority:1" json:"userId" validate:"required"`

	// Relationships
	SocialEvent *SocialEvent `gorm:"foreignKey:SocialEventID" json:"socialEvent,omitempty" validate:"-"`
	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty" validate:"-"`
}

// TableName specifies the table name for Attendee model
func (Attendee) TableName() string {
	return "attendees"
}

// BeforeCreate assigns an id when the caller has not chosen one
func (a *Attendee) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
