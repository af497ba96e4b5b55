package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	SessionSecret  string
	AllowedOrigins []string

	// Production switches the session cookie to Secure + SameSite=None
	// so the hosted frontend can send it cross-site.
	Production bool
}

// Load reads the environment, falling back to local-development
// defaults. A .env file is picked up when present.
func Load() Config {
	godotenv.Load()

	origins := strings.Split(
		getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return Config{
		Port:           getEnv("PORT", "5000"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "1234"),
		DBName:         getEnv("DB_NAME", "collegeerp"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		AllowedOrigins: origins,
		Production:     getEnv("APP_ENV", "development") == "production",
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
