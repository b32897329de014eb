package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"events-web-app/internal/models"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateAuditLog creates a new audit log entry
func (r *AuditRepository) CreateAuditLog(ctx context.Context, userID *uuid.UUID, action string, details string) error {
	log := &models.AuditLog{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// GetByAction lists audit entries for one action, newest first
func (r *AuditRepository) GetByAction(ctx context.Context, action string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("action = ?", action).
		Order("created_at DESC, id DESC").
		Find(&logs).Error
	return logs, err
}
