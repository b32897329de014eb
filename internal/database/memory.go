package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"events-web-app/internal/config"
)

// OpenInMemory opens a migrated in-memory SQLite database. Each call yields
// an independent database.
func OpenInMemory() (*gorm.DB, error) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", Database: ":memory:"},
		Server:   config.ServerConfig{GinMode: "test"},
	}

	db, err := Connect(cfg, zap.NewNop())
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
