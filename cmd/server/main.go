package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"events-web-app/internal/config"
	"events-web-app/internal/database"
	"events-web-app/internal/repository"
	"events-web-app/internal/router"
	"events-web-app/internal/service"
	"events-web-app/internal/storage"
	"events-web-app/internal/validator"
	"events-web-app/pkg/logger"
	"events-web-app/pkg/utils"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.Environment)
	defer log.Sync()
	log.Info("Configuration loaded successfully")

	// 2. Initialize database connection
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	hasher := utils.NewBcryptHasher()

	// 3. Seed on request: `server seeddata`
	if len(os.Args) > 1 && os.Args[1] == "seeddata" {
		if err := database.Seed(context.Background(), db, hasher, cfg.Seed, log); err != nil {
			log.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	// 4. Optional Redis for rate limiting
	var limiterStore redis.Scripter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unreachable, rate limiter will fail open", zap.Error(err))
		}
		limiterStore = rdb
	}

	// 5. Initialize services
	images, err := storage.NewLocalImageStore(cfg.Storage.ImageDir)
	if err != nil {
		log.Fatal("Failed to prepare image storage", zap.Error(err))
	}

	tokens := utils.NewJWTProvider(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	uow := repository.NewUnitOfWork(db)
	validate := validator.New()

	userService := service.NewUserService(uow, hasher, tokens, validate, log)
	socialEventService := service.NewSocialEventService(uow, images, validate, log)
	attendeeService := service.NewAttendeeService(uow, validate, log)

	// 6. Setup Gin
	gin.SetMode(cfg.Server.GinMode)
	r := router.New(router.Deps{
		Config:             cfg,
		DB:                 db,
		Redis:              limiterStore,
		Tokens:             tokens,
		UserService:        userService,
		SocialEventService: socialEventService,
		AttendeeService:    attendeeService,
		Logger:             log,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	// 7. Setup graceful shutdown
	go func() {
		log.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("Server exited")
}
