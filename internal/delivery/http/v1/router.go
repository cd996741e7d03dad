package v1

import (
	"context"
	"net/http"
	"time"

	"go-tutoring-backend/config"
	"go-tutoring-backend/internal/delivery/http/middleware"
	"go-tutoring-backend/internal/delivery/http/response"
	"go-tutoring-backend/internal/domain"
	"go-tutoring-backend/pkg/ratelimit"
	"go-tutoring-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC      domain.ContactUsecase
	InstagramUC    domain.InstagramUsecase
	SubmissionRepo domain.SubmissionRepository
	Limiter        ratelimit.Limiter
	LimiterFB      ratelimit.Limiter
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		data := gin.H{"redis": "disabled"}
		if redis.Client() != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			defer cancel()
			if err := redis.HealthCheck(ctx); err != nil {
				data["redis"] = "unreachable"
			} else {
				data["redis"] = "ok"
			}
		}
		response.Success(c, http.StatusOK, "System operational", data)
	})

	contactRateLimit := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Limiter:  deps.Limiter,
		Fallback: deps.LimiterFB,
		Limit:    deps.Config.RateLimitMax,
	})

	// Public routes
	NewContactHandler(v1, deps.ContactUC, contactRateLimit)
	NewInstagramHandler(v1, deps.InstagramUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware(deps.Config.AdminAPIToken))
	{
		NewAdminHandler(admin, deps.SubmissionRepo)
	}

	return r
}
