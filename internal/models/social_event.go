package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category classifies a social event.
type Category string

const (
	CategoryConference Category = "Conference"
	CategoryConvention Category = "Convention"
	CategoryConcert    Category = "Concert"
	CategoryExhibition Category = "Exhibition"
	CategoryFestival   Category = "Festival"
	CategoryMeetup     Category = "Meetup"
	CategoryParty      Category = "Party"
	CategorySport      Category = "Sport"
	CategoryWorkshop   Category = "Workshop"
	CategoryOther      Category = "Other"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryConference,
	CategoryConvention,
	CategoryConcert,
	CategoryExhibition,
	CategoryFestival,
	CategoryMeetup,
	CategoryParty,
	CategorySport,
	CategoryWorkshop,
	CategoryOther,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// SocialEvent represents the social_events table. It owns its attendees.
type SocialEvent struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	EventName   string    `gorm:"size:255;not null;index" json:"eventName" validate:"required,max=255"`
	Description string    `gorm:"type:text" json:"description" validate:"required,max=4000"`
	Date        time.Time `gorm:"not null;index" json:"date" validate:"required"`
	Category    Category  `gorm:"size:32;not null;index" json:"category" validate:"required,category"`
	Place       string    `gorm:"size:255;not null;index" json:"place" validate:"required,max=255"`
	MaxAttendee int       `gorm:"not null" json:"maxAttendee" validate:"gte=1,lte=100000"`
	Image       *string   `gorm:"size:512" json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relationships
	Attendees []Attendee `gorm:"foreignKey:SocialEventID" json:"attendees,omitempty" validate:"-"`
}

// TableName specifies the table name for SocialEvent model
func (SocialEvent) TableName() string {
	return "social_events"
}

// BeforeCreate assigns an id when the caller has not chosen one
func (e *SocialEvent) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
