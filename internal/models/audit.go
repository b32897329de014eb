package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog represents the audit_logs table
// Used for security tracking and admin action logging
type AuditLog struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    *uuid.UUID `gorm:"type:char(36);index" json:"userId"`
	Action    string     `gorm:"size:100;not null;index" json:"action"`
	Details   string     `gorm:"type:text" json:"details"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TableName specifies the table name for AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
