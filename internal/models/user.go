package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the users table
type User struct {
	ID                    uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Email                 string     `gorm:"uniqueIndex;not null;size:191" json:"email" validate:"required,email,max=191"`
	PasswordHash          string     `gorm:"not null;size:255" json:"-" validate:"required"`
	Username              string     `gorm:"not null;size:50" json:"username" validate:"required,min=2,max=50"`
	Role                  Role       `gorm:"not null;size:16" json:"role" validate:"required,role"`
	RefreshToken          *string    `gorm:"size:255" json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an id when the caller has not chosen one
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Roles returns the user's role as a set for token claims.
func (u *User) Roles() Roles {
	return NewRoles(u.Role)
}
