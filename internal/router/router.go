// Package router wires handlers and middleware into the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"events-web-app/internal/config"
	"events-web-app/internal/handler"
	"events-web-app/internal/middleware"
	"events-web-app/internal/models"
	"events-web-app/internal/service"
)

// Deps carries everything the routes need
type Deps struct {
	Config             *config.Config
	DB                 *gorm.DB
	Redis              redis.Scripter
	Tokens             middleware.AccessTokenValidator
	UserService        *service.UserService
	SocialEventService *service.SocialEventService
	AttendeeService    *service.AttendeeService
	Logger             *zap.Logger
}

// New builds the engine with every route registered
func New(deps Deps) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger

	r := gin.New()
	r.MaxMultipartMemory = cfg.Server.MaxUploadBytes
	r.Use(
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.Metrics(),
		middleware.CORS(cfg.CORS),
	)

	authHandler := handler.NewAuthHandler(deps.UserService, cfg.Cookie, log)
	userHandler := handler.NewUserHandler(deps.UserService, log)
	socialEventHandler := handler.NewSocialEventHandler(deps.SocialEventService, cfg.Server.MaxUploadBytes, log)
	attendeeHandler := handler.NewAttendeeHandler(deps.AttendeeService, log)
	healthHandler := handler.NewHealthHandler(deps.DB)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth routes (public)
	limited := middleware.RateLimit(cfg.RateLimit, deps.Redis, log)
	r.POST("/login", limited, authHandler.Login)
	r.POST("/register", limited, authHandler.Register)
	r.POST("/refresh", limited, authHandler.Refresh)
	r.GET("/logout", authHandler.Logout)

	authenticated := middleware.AuthMiddleware(deps.Tokens)
	r.GET("/getRole", authenticated, authHandler.GetRole)
	anyRole := middleware.RequireRoles(log, models.RoleUser, models.RoleAdmin)
	adminOnly := middleware.RequireRoles(log, models.RoleAdmin)

	socialEvents := r.Group("/socialEvents")
	socialEvents.Use(authenticated, anyRole)
	{
		socialEvents.GET("", socialEventHandler.GetSocialEvents)
		socialEvents.GET("/getSocialEventById", socialEventHandler.GetSocialEventByID)
		socialEvents.GET("/getSocialEventByName", socialEventHandler.GetSocialEventsByName)
		socialEvents.GET("/getSocialEventByDate", socialEventHandler.GetSocialEventsByDate)
		socialEvents.GET("/getSocialEventByCategory", socialEventHandler.GetSocialEventsByCategory)
		socialEvents.GET("/getSocialEventByPlace", socialEventHandler.GetSocialEventsByPlace)

		socialEvents.POST("", adminOnly, socialEventHandler.CreateSocialEvent)
		socialEvents.PUT("/updateEvent", adminOnly, socialEventHandler.UpdateSocialEvent)
		socialEvents.DELETE("/deleteEvent", adminOnly, socialEventHandler.DeleteSocialEvent)
		socialEvents.PUT("/upload", adminOnly, socialEventHandler.UploadImage)
	}

	attendees := r.Group("/attendees")
	attendees.Use(authenticated, anyRole)
	{
		attendees.GET("", attendeeHandler.GetAttendees)
		attendees.GET("/getAttendeeById", attendeeHandler.GetAttendeeByID)
		attendees.GET("/getAttendeesBySocialEvent", attendeeHandler.GetAttendeesBySocialEvent)
		attendees.POST("", attendeeHandler.RegisterAttendee)
		attendees.PUT("/updateAttendee", attendeeHandler.UpdateAttendee)
		attendees.DELETE("/deleteAttendee", adminOnly, attendeeHandler.DeleteAttendee)
	}

	users := r.Group("/users")
	users.Use(authenticated, adminOnly)
	{
		users.GET("", userHandler.GetUsers)
		users.GET("/getUserById", userHandler.GetUserByID)
		users.GET("/getUserByEmail", userHandler.GetUserByEmail)
		users.PUT("/updateUser", userHandler.UpdateUser)
		users.DELETE("/deleteUser", userHandler.DeleteUser)
	}

	return r
}
