package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"events-web-app/internal/config"
	"events-web-app/internal/models"
)

type plainHasher struct{}

func (plainHasher) Generate(password string) (string, error) { return "hashed:" + password, nil }

func TestDialectorForRejectsUnknownDriver(t *testing.T) {
	_, err := dialectorFor(config.DatabaseConfig{Driver: "oracle"})
	assert.EqualError(t, err, `unsupported database driver "oracle"`)
}

func TestDialectorForKnownDrivers(t *testing.T) {
	for _, driver := range []string{"", "mysql", "postgres", "sqlite"} {
		d, err := dialectorFor(config.DatabaseConfig{Driver: driver, Database: ":memory:"})
		require.NoError(t, err, driver)
		assert.NotNil(t, d, driver)
	}
}

func TestMySQLDSNCountsMatchedRows(t *testing.T) {
	dsn := mysqlDSN(config.DatabaseConfig{
		Host: "db", Port: "3306", User: "events", Password: "secret", Database: "events",
	})
	assert.Equal(t, "events:secret@tcp(db:3306)/events?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true", dsn)
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := &config.Config{
		Database: config.DatabaseConfig{Driver: "sqlite", Database: ":memory:"},
		Server:   config.ServerConfig{GinMode: "test"},
	}
	db, err := Connect(cfg, zap.New(core))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	gormEntries := func() int {
		return logs.Filter(func(e observer.LoggedEntry) bool { return e.LoggerName == "gorm" }).Len()
	}

	var user models.User
	err = db.Where("email = ?", "nobody@example.com").First(&user).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, gormEntries())

	err = db.Exec("SELECT * FROM no_such_table").Error
	assert.Error(t, err)
	assert.NotZero(t, gormEntries())
}

func TestSeedIsIdempotent(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)

	seed := config.SeedConfig{AdminEmail: "admin@events.local", AdminPassword: "admin123", AdminUsername: "admin"}
	require.NoError(t, Seed(context.Background(), db, plainHasher{}, seed, zap.NewNop()))
	require.NoError(t, Seed(context.Background(), db, plainHasher{}, seed, zap.NewNop()))

	var admins []models.User
	require.NoError(t, db.Where("email = ?", seed.AdminEmail).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, models.RoleAdmin, admins[0].Role)
	assert.Equal(t, "hashed:admin123", admins[0].PasswordHash)

	var events int64
	require.NoError(t, db.Model(&models.SocialEvent{}).Count(&events).Error)
	assert.Equal(t, int64(4), events)
}
