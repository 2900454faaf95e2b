// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"salapi-backend/pkg/db"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	DB         db.Config

	// JWTSecret signs session tokens issued at login.
	JWTSecret string
	// SessionTTL is how long an issued session token stays valid.
	SessionTTL time.Duration

	// ImageDir is the root directory of the local image store.
	ImageDir string
	// ImageBaseURL prefixes stored image addresses returned to clients.
	ImageBaseURL string
	// ExportDir is where generated CSV/PDF files are written.
	ExportDir string
}

// LoadConfig loads configuration from environment variables.
// It returns an AppConfig instance or an error if any variable is invalid.
func LoadConfig() (*AppConfig, error) {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		dbPortStr = "5432"
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "user"
	}
	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		dbPassword = "password"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "salapidb"
	}
	dbSSLMode := os.Getenv("DB_SSLMODE")
	if dbSSLMode == "" {
		dbSSLMode = "disable"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "salapi_dev_secret_change_me"
	}

	sessionTTL := 24 * time.Hour
	if ttlStr := os.Getenv("SESSION_TTL_HOURS"); ttlStr != "" {
		hours, err := strconv.Atoi(ttlStr)
		if err != nil || hours <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %q", ttlStr)
		}
		sessionTTL = time.Duration(hours) * time.Hour
	}

	imageDir := os.Getenv("IMAGE_DIR")
	if imageDir == "" {
		imageDir = "./data/images"
	}
	imageBaseURL := os.Getenv("IMAGE_BASE_URL")
	if imageBaseURL == "" {
		imageBaseURL = "/images"
	}
	exportDir := os.Getenv("EXPORT_DIR")
	if exportDir == "" {
		exportDir = "./data/exports"
	}

	return &AppConfig{
		ServerPort: serverPort,
		DB: db.Config{
			Host:     dbHost,
			Port:     dbPort,
			User:     dbUser,
			Password: dbPassword,
			DBName:   dbName,
			SSLMode:  dbSSLMode,
		},
		JWTSecret:    jwtSecret,
		SessionTTL:   sessionTTL,
		ImageDir:     imageDir,
		ImageBaseURL: imageBaseURL,
		ExportDir:    exportDir,
	}, nil
}
