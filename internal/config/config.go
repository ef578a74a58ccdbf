package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	FailurePolicyContinue = "continue"
	FailurePolicyAbort    = "abort"
)

// Config holds the service configuration read from the environment
type Config struct {
	Port     string `envconfig:"PORT" default:"8080" validate:"required,numeric"`
	Domain   string `envconfig:"DOMAIN"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error"`
	LogJSON  bool   `envconfig:"LOG_JSON" default:"false"`

	DriveUploadURL string        `envconfig:"GOOGLEDRIVE_UPLOAD_URL" default:"https://www.googleapis.com/upload/drive/v3" validate:"required,url"`
	DriveTokenURL  string        `envconfig:"GOOGLEDRIVE_TOKEN_URL" default:"https://oauth2.googleapis.com/token" validate:"required,url"`
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`

	FailurePolicy     string        `envconfig:"UPLOAD_FAILURE_POLICY" default:"continue" validate:"oneof=continue abort"`
	UploadConcurrency int           `envconfig:"UPLOAD_CONCURRENCY" default:"1" validate:"min=1,max=16"`
	ItemTimeout       time.Duration `envconfig:"UPLOAD_ITEM_TIMEOUT" default:"5m" validate:"gt=0"`
	ProductLabel      string        `envconfig:"UPLOAD_PRODUCT_LABEL" default:"Google Drive for Mattermost" validate:"required"`
}

// Load reads the .env file for local development (ignored in Docker), then the environment
func Load(envFile string) (*Config, error) {
	if os.Getenv("DOCKER_ENV") == "" && envFile != "" {
		// A missing .env file is fine, system environment variables are used instead
		_ = godotenv.Load(envFile)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config values
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// AbortOnFailure reports whether a failed item aborts the whole batch
func (c *Config) AbortOnFailure() bool {
	return c.FailurePolicy == FailurePolicyAbort
}
