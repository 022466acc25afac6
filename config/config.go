package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// MailerConfig holds configuration for the outgoing email provider.
type MailerConfig struct {
	Provider           string
	FromAddress        string
	FromName           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Config holds all configuration for the application
type Config struct {
	Environment        string
	Port               string
	CORSAllowedOrigins []string
	Mailer             MailerConfig
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		Port:        os.Getenv("PORT"),
		Mailer: MailerConfig{
			Provider:           os.Getenv("MAILER_PROVIDER"),
			FromAddress:        os.Getenv("MAILER_FROM_ADDRESS"),
			FromName:           os.Getenv("MAILER_FROM_NAME"),
			AWSRegion:          os.Getenv("AWS_REGION"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Mailer.Provider == "" {
		cfg.Mailer.Provider = "noop"
	}
	if cfg.Mailer.FromAddress == "" {
		cfg.Mailer.FromAddress = "no-reply@eventportal.local"
	}
	if cfg.Mailer.FromName == "" {
		cfg.Mailer.FromName = "Event Portal"
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	} else {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	return cfg, nil
}
