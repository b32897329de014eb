package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"events-web-app/internal/database"
	"events-web-app/internal/models"
	"events-web-app/internal/repository"
	"events-web-app/internal/validator"
	"events-web-app/pkg/utils"
)

const testSecret = "test-secret-key-for-services"

type testEnv struct {
	db        *gorm.DB
	store     *repository.Store
	tokens    *utils.JWTProvider
	images    *memoryImages
	users     *UserService
	events    *SocialEventService
	attendees *AttendeeService
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithTokens(t, utils.NewJWTProvider(testSecret, 15*time.Minute, 24*time.Hour))
}

func newTestEnvWithTokens(t *testing.T, tokens *utils.JWTProvider) *testEnv {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	uow := repository.NewUnitOfWork(db)
	validate := validator.New()
	images := newMemoryImages()
	log := zap.NewNop()

	return &testEnv{
		db:        db,
		store:     repository.NewStore(db),
		tokens:    tokens,
		images:    images,
		users:     NewUserService(uow, &utils.BcryptHasher{Cost: bcrypt.MinCost}, tokens, validate, log),
		events:    NewSocialEventService(uow, images, validate, log),
		attendees: NewAttendeeService(uow, validate, log),
	}
}

func (e *testEnv) addEvent(t *testing.T, name string, date time.Time, maxAttendee int) *models.SocialEvent {
	t.Helper()
	event := &models.SocialEvent{
		EventName:   name,
		Description: "About " + name,
		Date:        date,
		Category:    models.CategoryMeetup,
		Place:       "Minsk",
		MaxAttendee: maxAttendee,
	}
	_, err := e.events.CreateSocialEvent(context.Background(), event, nil, nil)
	require.NoError(t, err)
	return event
}

func (e *testEnv) addUser(t *testing.T, email string) *models.User {
	t.Helper()
	result, err := e.users.Register(context.Background(), email, "secret123", "tester")
	require.NoError(t, err)
	return result.User
}

func newAttendee(user *models.User, event *models.SocialEvent) *models.Attendee {
	return &models.Attendee{
		Name:          "Ivan",
		Surname:       "Petrov",
		Email:         user.Email,
		DateOfBirth:   time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC),
		SocialEventID: event.ID,
		UserID:        user.ID,
	}
}

// memoryImages is an ImageStore keeping files in a map
type memoryImages struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemoryImages() *memoryImages {
	return &memoryImages{files: make(map[string][]byte)}
}

func (m *memoryImages) Store(filename string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name := fmt.Sprintf("%s-%s", uuid.NewString(), filename)
	m.files[name] = data
	return name, nil
}

func (m *memoryImages) Delete(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	return nil
}

func (m *memoryImages) has(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[path]
	return ok
}
