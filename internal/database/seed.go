package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"events-web-app/internal/config"
	"events-web-app/internal/models"
)

// PasswordGenerator hashes the seeded admin password.
type PasswordGenerator interface {
	Generate(password string) (string, error)
}

// Seed inserts an admin account and sample social events. Existing rows are
// left untouched, so running it twice is harmless.
func Seed(ctx context.Context, db *gorm.DB, hasher PasswordGenerator, cfg config.SeedConfig, log *zap.Logger) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedAdmin(tx, hasher, cfg, log); err != nil {
			return err
		}
		return seedSocialEvents(tx, log)
	})
}

func seedAdmin(tx *gorm.DB, hasher PasswordGenerator, cfg config.SeedConfig, log *zap.Logger) error {
	var existing models.User
	err := tx.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		log.Info("Admin account already present", zap.String("email", cfg.AdminEmail))
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := hasher.Generate(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Username:     cfg.AdminUsername,
		Role:         models.RoleAdmin,
	}
	if err := tx.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	log.Info("Seeded admin account", zap.String("email", cfg.AdminEmail))
	return nil
}

func seedSocialEvents(tx *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := tx.Model(&models.SocialEvent{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	base := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 1, 0)
	events := []models.SocialEvent{
		{
			EventName:   "Trivia Night Extravaganza",
			Description: "Teams compete to answer questions across various categories. Great prizes await the winners!",
			Date:        base,
			Category:    models.CategoryOther,
			Place:       "Minsk",
			MaxAttendee: 160,
		},
		{
			EventName:   "Book Lovers Convention",
			Description: "Discuss the chosen book, enjoy lively discussions and meet fellow book enthusiasts.",
			Date:        base.AddDate(0, 0, 7),
			Category:    models.CategoryConvention,
			Place:       "Polotsk",
			MaxAttendee: 20,
		},
		{
			EventName:   "Open Air Jazz",
			Description: "An evening of live jazz in the park.",
			Date:        base.AddDate(0, 0, 14),
			Category:    models.CategoryConcert,
			Place:       "Grodno",
			MaxAttendee: 300,
		},
		{
			EventName:   "Go Meetup",
			Description: "Talks and pizza for gophers of every level.",
			Date:        base.AddDate(0, 0, 21),
			Category:    models.CategoryMeetup,
			Place:       "Minsk",
			MaxAttendee: 80,
		},
	}

	if err := tx.Create(&events).Error; err != nil {
		return fmt.Errorf("failed to seed social events: %w", err)
	}

	log.Info("Seeded social events", zap.Int("count", len(events)))
	return nil
}
