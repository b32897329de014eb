package router

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"events-web-app/internal/config"
	"events-web-app/internal/database"
	"events-web-app/internal/dto"
	"events-web-app/internal/middleware"
	"events-web-app/internal/models"
	"events-web-app/internal/repository"
	"events-web-app/internal/service"
	"events-web-app/internal/storage"
	"events-web-app/internal/validator"
	"events-web-app/pkg/utils"
)

const (
	adminEmail    = "admin@events.test"
	adminPassword = "admin123"
)

// smallest valid PNG
var pngBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	hasher := &utils.BcryptHasher{Cost: bcrypt.MinCost}
	seed := config.SeedConfig{AdminEmail: adminEmail, AdminPassword: adminPassword, AdminUsername: "admin"}
	require.NoError(t, database.Seed(context.Background(), db, hasher, seed, zap.NewNop()))

	images, err := storage.NewLocalImageStore(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	cfg := &config.Config{
		Server:    config.ServerConfig{MaxUploadBytes: 1 << 20},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"https://localhost:5173"}},
		Cookie:    config.CookieConfig{Domain: "localhost", Secure: true},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}

	tokens := utils.NewJWTProvider("router-test-secret", 15*time.Minute, 24*time.Hour)
	uow := repository.NewUnitOfWork(db)
	validate := validator.New()
	log := zap.NewNop()

	engine := New(Deps{
		Config:             cfg,
		DB:                 db,
		Tokens:             tokens,
		UserService:        service.NewUserService(uow, hasher, tokens, validate, log),
		SocialEventService: service.NewSocialEventService(uow, images, validate, log),
		AttendeeService:    service.NewAttendeeService(uow, validate, log),
		Logger:             log,
	})
	return &testServer{engine: engine}
}

func (s *testServer) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.engine.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) doJSON(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, token)
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rr := s.doJSON(http.MethodPost, "/login", dto.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var tokens dto.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tokens))
	return tokens.AccessToken
}

func (s *testServer) register(t *testing.T, email string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	rr := s.doJSON(http.MethodPost, "/register",
		dto.RegisterRequest{Email: email, Password: "secret123", Username: "guest"}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var tokens dto.TokenResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tokens))
	return rr, tokens.AccessToken
}

func (s *testServer) createEvent(t *testing.T, token string, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if image != nil {
		part, err := w.CreateFormFile("image", "poster.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/socialEvents", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return s.do(req, token)
}

func eventFields(name string) map[string]string {
	return map[string]string{
		"eventName":   name,
		"description": "Talks about " + name,
		"date":        "2031-05-06",
		"category":    "Meetup",
		"place":       "Vitebsk",
		"maxAttendee": "1",
	}
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func cookieNamed(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "healthy")

	rr = s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "events_web_app_requests_total")
}

func TestRegisterSetsCookiesAndRefreshWorks(t *testing.T) {
	s := newTestServer(t)

	rr, accessToken := s.register(t, "guest@events.test")
	assert.NotEmpty(t, accessToken)

	access := cookieNamed(rr, middleware.AccessTokenCookie)
	refresh := cookieNamed(rr, middleware.RefreshTokenCookie)
	require.NotNil(t, access)
	require.NotNil(t, refresh)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteNoneMode, access.SameSite)

	req := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(access)
	req.AddCookie(refresh)
	rr = s.do(req, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decode[dto.TokenResponse](t, rr)
	assert.NotEmpty(t, body.AccessToken)
	// gin query-escapes cookie values
	sent, err := url.QueryUnescape(refresh.Value)
	require.NoError(t, err)
	assert.Equal(t, sent, body.RefreshToken)
	assert.NotNil(t, cookieNamed(rr, middleware.AccessTokenCookie))

	// a forged refresh token is rejected
	req = httptest.NewRequest(http.MethodPost, "/refresh", nil)
	req.AddCookie(access)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: "forged"})
	rr = s.do(req, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// no cookies at all is a validation problem
	rr = s.do(httptest.NewRequest(http.MethodPost, "/refresh", nil), "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRegisterRejectsDuplicateAndInvalidInput(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "dup@events.test")

	rr := s.doJSON(http.MethodPost, "/register",
		dto.RegisterRequest{Email: "dup@events.test", Password: "secret123", Username: "again"}, "")
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.doJSON(http.MethodPost, "/register",
		dto.RegisterRequest{Email: "not-an-email", Password: "123", Username: "x"}, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	problem := decode[utils.ProblemDetails](t, rr)
	assert.Equal(t, "One or more validation errors occurred.", problem.Detail)
	assert.Len(t, problem.Errors, 3)
}

func TestLoginFailureAndLogout(t *testing.T) {
	s := newTestServer(t)

	rr := s.doJSON(http.MethodPost, "/login", dto.LoginRequest{Email: adminEmail, Password: "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "x"})
	rr = s.do(req, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	expired := cookieNamed(rr, middleware.AccessTokenCookie)
	require.NotNil(t, expired)
	assert.True(t, expired.MaxAge < 0)
	assert.Nil(t, cookieNamed(rr, middleware.RefreshTokenCookie))
}

func TestGetRole(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)

	rr := s.do(httptest.NewRequest(http.MethodGet, "/getRole", nil), admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `"Admin"`, strings.TrimSpace(rr.Body.String()))

	req := httptest.NewRequest(http.MethodGet, "/getRole", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: admin})
	rr = s.do(req, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `"Admin"`, strings.TrimSpace(rr.Body.String()))

	rr = s.do(httptest.NewRequest(http.MethodGet, "/getRole", nil), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))

	expired := utils.NewJWTProvider("router-test-secret", -time.Minute, time.Hour)
	token, err := expired.GenerateAccessToken(&models.User{ID: uuid.New(), Email: "old@events.test", Role: models.RoleUser})
	require.NoError(t, err)
	rr = s.do(httptest.NewRequest(http.MethodGet, "/getRole", nil), token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/getRole", nil), "garbage")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSocialEventRoutesRequireRoles(t *testing.T) {
	s := newTestServer(t)
	_, user := s.register(t, "user@events.test")

	rr := s.do(httptest.NewRequest(http.MethodGet, "/socialEvents", nil), "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/socialEvents", nil), user)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = s.createEvent(t, user, eventFields("Forbidden"), nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/users", nil), user)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestSocialEventLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)

	rr := s.createEvent(t, admin, eventFields("Gopher Day"), pngBytes)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	id := decode[dto.IDResponse](t, rr).ID

	rr = s.do(httptest.NewRequest(http.MethodGet, "/socialEvents/getSocialEventById?id="+id, nil), admin)
	require.Equal(t, http.StatusOK, rr.Code)
	event := decode[dto.SocialEventResponse](t, rr)
	assert.Equal(t, "Gopher Day", event.EventName)
	require.NotNil(t, event.Image)
	assert.Equal(t, ".png", filepath.Ext(*event.Image))

	rr = s.do(httptest.NewRequest(http.MethodGet, "/socialEvents/getSocialEventByPlace?place=Vitebsk", nil), admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]dto.SocialEventResponse](t, rr), 1)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/socialEvents/getSocialEventByDate?date=2031-05-06", nil), admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]dto.SocialEventResponse](t, rr), 1)

	update := dto.UpdateSocialEventRequest{
		ID:          id,
		EventName:   "Gopher Day 2",
		Description: "Updated",
		Date:        "2031-05-07",
		Category:    "Conference",
		Place:       "Vitebsk",
		MaxAttendee: 10,
	}
	rr = s.doJSON(http.MethodPut, "/socialEvents/updateEvent", update, admin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(httptest.NewRequest(http.MethodGet, "/socialEvents/getSocialEventByName?name=Gopher%20Day%202", nil), admin)
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decode[[]dto.SocialEventResponse](t, rr)
	require.Len(t, updated, 1)
	assert.Equal(t, event.Image, updated[0].Image)

	rr = s.doJSON(http.MethodDelete, "/socialEvents/deleteEvent", id, admin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(httptest.NewRequest(http.MethodGet, "/socialEvents/getSocialEventById?id="+id, nil), admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateSocialEventValidation(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)

	rr := s.createEvent(t, admin, map[string]string{"maxAttendee": "0"}, nil)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	problem := decode[utils.ProblemDetails](t, rr)
	assert.Equal(t, "One or more validation errors occurred.", problem.Detail)
	assert.Contains(t, problem.Errors, "field 'eventName' is required")

	rr = s.createEvent(t, admin, eventFields("Text poster"), []byte("plain text, not an image"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPagedListing(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)

	rr := s.do(httptest.NewRequest(http.MethodGet, "/socialEvents?pageIndex=1&pageSize=3", nil), admin)
	require.Equal(t, http.StatusOK, rr.Code)
	page := decode[models.PaginatedList[dto.SocialEventResponse]](t, rr)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(4), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasNextPage)
	assert.False(t, page.HasPreviousPage)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/socialEvents?pageIndex=abc", nil), admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/socialEvents?pageSize=1000", nil), admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUploadImageReplacesImage(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)

	rr := s.createEvent(t, admin, eventFields("Poster swap"), nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	id := decode[dto.IDResponse](t, rr).ID

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("formFile", "new.png")
	require.NoError(t, err)
	_, err = part.Write(pngBytes)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, "/socialEvents/upload?id="+id, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rr = s.do(req, admin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), ".png")

	req = httptest.NewRequest(http.MethodPut, "/socialEvents/upload?id="+id, nil)
	rr = s.do(req, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAttendeeRegistration(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)
	_, first := s.register(t, "first@events.test")
	_, second := s.register(t, "second@events.test")

	rr := s.createEvent(t, admin, eventFields("Tiny room"), nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	eventID := decode[dto.IDResponse](t, rr).ID

	attendee := dto.CreateAttendeeRequest{
		Name:          "Anna",
		Surname:       "Ivanova",
		Email:         "first@events.test",
		DateOfBirth:   "1994-01-02",
		SocialEventID: eventID,
	}
	rr = s.doJSON(http.MethodPost, "/attendees", attendee, first)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	attendeeID := decode[dto.IDResponse](t, rr).ID

	rr = s.doJSON(http.MethodPost, "/attendees", attendee, first)
	assert.Equal(t, http.StatusConflict, rr.Code)

	// the only place is taken
	attendee.Email = "second@events.test"
	rr = s.doJSON(http.MethodPost, "/attendees", attendee, second)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/attendees/getAttendeesBySocialEvent?id="+eventID, nil), second)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]dto.AttendeeResponse](t, rr), 1)

	rr = s.doJSON(http.MethodPut, "/attendees/updateAttendee", dto.UpdateAttendeeRequest{
		ID:          attendeeID,
		Name:        "Anna",
		Surname:     "Petrova",
		Email:       "first@events.test",
		DateOfBirth: "1994-01-02",
	}, first)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(httptest.NewRequest(http.MethodGet, "/attendees/getAttendeeById?id="+attendeeID, nil), first)
	require.Equal(t, http.StatusOK, rr.Code)
	updated := decode[dto.AttendeeResponse](t, rr)
	assert.Equal(t, "Petrova", updated.Surname)
	assert.Equal(t, eventID, updated.SocialEventID)

	rr = s.doJSON(http.MethodDelete, "/attendees/deleteAttendee", attendeeID, first)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = s.doJSON(http.MethodDelete, "/attendees/deleteAttendee", attendeeID, admin)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdateAttendeeOfAnotherUserIsForbidden(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)
	_, alice := s.register(t, "alice@events.test")
	_, mallory := s.register(t, "mallory@events.test")

	fields := eventFields("Book club")
	fields["maxAttendee"] = "5"
	rr := s.createEvent(t, admin, fields, nil)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	eventID := decode[dto.IDResponse](t, rr).ID

	rr = s.doJSON(http.MethodPost, "/attendees", dto.CreateAttendeeRequest{
		Name:          "Alice",
		Surname:       "Smith",
		Email:         "alice@events.test",
		DateOfBirth:   "1990-03-04",
		SocialEventID: eventID,
	}, alice)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	attendeeID := decode[dto.IDResponse](t, rr).ID

	changes := func(name string) dto.UpdateAttendeeRequest {
		return dto.UpdateAttendeeRequest{
			ID:          attendeeID,
			Name:        name,
			Surname:     "Smith",
			Email:       "alice@events.test",
			DateOfBirth: "1990-03-04",
		}
	}

	rr = s.doJSON(http.MethodPut, "/attendees/updateAttendee", changes("Mallory"), mallory)
	assert.Equal(t, http.StatusForbidden, rr.Code, rr.Body.String())

	rr = s.do(httptest.NewRequest(http.MethodGet, "/attendees/getAttendeeById?id="+attendeeID, nil), alice)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Alice", decode[dto.AttendeeResponse](t, rr).Name)

	// resubmitting identical values is still a successful update
	rr = s.doJSON(http.MethodPut, "/attendees/updateAttendee", changes("Alice"), alice)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.doJSON(http.MethodPut, "/attendees/updateAttendee", changes("Alicia"), admin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = s.do(httptest.NewRequest(http.MethodGet, "/attendees/getAttendeeById?id="+attendeeID, nil), alice)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Alicia", decode[dto.AttendeeResponse](t, rr).Name)
}

func TestGetUserByEmail(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)
	_, user := s.register(t, "lookup@events.test")

	rr := s.do(httptest.NewRequest(http.MethodGet, "/users/getUserByEmail?email="+url.QueryEscape("lookup@events.test"), nil), admin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	found := decode[dto.UserResponse](t, rr)
	assert.Equal(t, "lookup@events.test", found.Email)
	assert.Equal(t, "User", found.Role)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/users/getUserByEmail?email=nobody@events.test", nil), admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/users/getUserByEmail", nil), admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(httptest.NewRequest(http.MethodGet, "/users/getUserByEmail?email=lookup@events.test", nil), user)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestUserAdministration(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, adminEmail, adminPassword)
	s.register(t, "managed@events.test")

	rr := s.do(httptest.NewRequest(http.MethodGet, "/users", nil), admin)
	require.Equal(t, http.StatusOK, rr.Code)
	users := decode[[]dto.UserResponse](t, rr)
	require.Len(t, users, 2)

	var managed dto.UserResponse
	for _, u := range users {
		if u.Email == "managed@events.test" {
			managed = u
		}
	}
	require.NotEmpty(t, managed.ID)

	rr = s.doJSON(http.MethodPut, "/users/updateUser", dto.UpdateUserRequest{
		ID:       managed.ID,
		Email:    managed.Email,
		Username: "promoted",
		Role:     "Admin",
	}, admin)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = s.do(httptest.NewRequest(http.MethodGet, "/users/getUserById?id="+managed.ID, nil), admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Admin", decode[dto.UserResponse](t, rr).Role)

	rr = s.doJSON(http.MethodPut, "/users/updateUser", dto.UpdateUserRequest{
		ID:       managed.ID,
		Email:    adminEmail,
		Username: "promoted",
		Role:     "Admin",
	}, admin)
	assert.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())

	rr = s.doJSON(http.MethodDelete, "/users/deleteUser", managed.ID, admin)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.doJSON(http.MethodDelete, "/users/deleteUser", managed.ID, admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.doJSON(http.MethodDelete, "/users/deleteUser", 42, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
