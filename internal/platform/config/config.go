package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Classifier settings. When disabled, imports still work; rows without a
	// dialect-supplied category stage as Uncategorized.
	ClassifierEnabled bool
	ClassifierModel   string
	ClassifierTimeout time.Duration

	// Rate limiting, expressed in ulule/limiter's format, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("CLASSIFIER_ENABLED", false)
	viper.SetDefault("CLASSIFIER_MODEL", "gemini-2.0-flash")
	viper.SetDefault("CLASSIFIER_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.ClassifierEnabled = viper.GetBool("CLASSIFIER_ENABLED")
	cfg.ClassifierModel = viper.GetString("CLASSIFIER_MODEL")

	classifierTimeoutStr := viper.GetString("CLASSIFIER_TIMEOUT")
	classifierTimeout, err := time.ParseDuration(classifierTimeoutStr)
	if err != nil {
		classifierTimeout = 10 * time.Second
		if classifierTimeoutStr != "" {
			log.Printf("Warning: Invalid value for CLASSIFIER_TIMEOUT ('%s'). Defaulting to %s.\n", classifierTimeoutStr, classifierTimeout.String())
		}
	}
	cfg.ClassifierTimeout = classifierTimeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
