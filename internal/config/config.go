package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string // sqlite (default), postgres, mysql
	DatabasePath    string // sqlite only
	DatabaseURL     string // postgres/mysql only
	MigrationsPath  string
	TemplatesPath   string
	StaticFilesPath string
	SessionDuration time.Duration

	// Admin panel access
	AdminPassword string
	AdminJWTKey   string

	// Quiz reward policy
	RewardMinutes int

	// Weekly progress email (disabled when SESFromEmail is empty)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	ParentEmail  string
	EmailDebug   bool
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is applied first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./tymonteam.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./web/templates"),
		StaticFilesPath: getEnv("STATIC_PATH", "./web/static"),
		SessionDuration: 24 * time.Hour,

		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
		AdminJWTKey:   getEnv("ADMIN_JWT_KEY", ""),

		RewardMinutes: getEnvInt("REWARD_MINUTES", 10),

		AWSRegion:    getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "TymonTeam"),
		ParentEmail:  getEnv("PARENT_EMAIL", ""),
		EmailDebug:   getEnv("EMAIL_DEBUG", "") == "true",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid value for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
