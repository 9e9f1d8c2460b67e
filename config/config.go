package config

import (
	"os"
	"time"
)

// Config holds all process-level settings, loaded once at startup.
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string

	JWTSecret string

	// SummaryTTL bounds how long cached analytics reports are served
	// before a recompute.
	SummaryTTL time.Duration

	// RefreshInterval is the period of the background summary refresher.
	// Zero disables it.
	RefreshInterval time.Duration

	CORSAllowedOrigins string
}

func Load() *Config {
	return &Config{
		MongoURI:           getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGO_DATABASE", "surveypulse"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		JWTSecret:          getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		SummaryTTL:         getDuration("SUMMARY_TTL", 10*time.Minute),
		RefreshInterval:    getDuration("REFRESH_INTERVAL", 15*time.Minute),
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
