package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-tutoring-backend/config"
	_ "go-tutoring-backend/docs" // Important for Swagger
	v1 "go-tutoring-backend/internal/delivery/http/v1"
	"go-tutoring-backend/internal/repository/file"
	"go-tutoring-backend/internal/usecase"
	"go-tutoring-backend/pkg/email"
	"go-tutoring-backend/pkg/logger"
	"go-tutoring-backend/pkg/ratelimit"
	"go-tutoring-backend/pkg/redis"
	"go-tutoring-backend/pkg/validation"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// @title           Tutoring Site Backend API
// @version         1.0
// @description     Contact and showcase backend for the PC/smartphone tutoring site.
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	defer logger.Log.Sync()
	logger.Log.Info("Starting tutoring site backend", zap.String("port", cfg.Port))

	// 3. Register custom validators on gin's binding engine
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	// 4. Setup Rate Limiter (Redis when configured, in-memory otherwise)
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	memoryLimiter := ratelimit.NewMemoryLimiter(cfg.RateLimitMax, window)
	var limiter ratelimit.Limiter = memoryLimiter

	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting runs in-process", zap.Error(err))
	} else {
		limiter = ratelimit.NewRedisLimiter(redis.Client(), cfg.RateLimitMax, window, "rl:contact:")
	}
	defer redis.Close()

	// 5. Setup Email Service
	emailService := email.NewService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not configured - submissions will be stored without notification")
	}

	// 6. Setup Repository and UseCases
	submissionRepo := file.NewSubmissionRepository(cfg.SubmissionsFile)
	contactUC := usecase.NewContactUsecase(submissionRepo, emailService)
	instagramUC := usecase.NewInstagramUsecase(cfg)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC:      contactUC,
		InstagramUC:    instagramUC,
		SubmissionRepo: submissionRepo,
		Limiter:        limiter,
		LimiterFB:      memoryLimiter,
		Config:         cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
