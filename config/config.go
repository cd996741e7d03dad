package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	FrontendURL string
	// SendGrid Configuration
	SendGridAPIKey string
	EmailFromName  string
	EmailFromAddr  string
	ContactEmailTo string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitMax           int
	RateLimitWindowSeconds int
	// Submission Store
	SubmissionsFile string
	// Admin API
	AdminAPIToken string
	// Instagram Showcase
	InstagramAccessToken string
	InstagramUserID      string
	InstagramCacheTTL    time.Duration
	// HTTP Server Timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		// SendGrid Configuration
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "パソコン・スマホ個人レッスン"),
		EmailFromAddr:  getEnv("EMAIL_FROM_ADDRESS", "noreply@pc-smartphone-lesson.jp"),
		ContactEmailTo: getEnv("CONTACT_EMAIL_TO", "info@pc-smartphone-lesson.jp"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (5 submissions per hour per IP)
		RateLimitMax:           getEnvInt("RATE_LIMIT_MAX", 5),
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 3600),
		// Submission Store
		SubmissionsFile: getEnv("SUBMISSIONS_FILE", "data/submissions.json"),
		// Admin API
		AdminAPIToken: getEnv("ADMIN_API_TOKEN", ""),
		// Instagram Showcase
		InstagramAccessToken: getEnv("INSTAGRAM_ACCESS_TOKEN", ""),
		InstagramUserID:      getEnv("INSTAGRAM_USER_ID", ""),
		InstagramCacheTTL:    getEnvDuration("INSTAGRAM_CACHE_TTL", 30*time.Minute),
		// HTTP Server Timeouts
		ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
	}

	// Surface missing optional config early so operators know which
	// degraded mode the service will run in.
	if cfg.SendGridAPIKey == "" {
		log.Println("WARNING: SENDGRID_API_KEY not configured. Submissions will be stored without email notification.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.AdminAPIToken == "" {
		log.Println("WARNING: ADMIN_API_TOKEN not configured. Admin submission endpoints are disabled.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvDuration returns a duration environment variable or fallback if not set/invalid
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
