package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds runtime settings. The env tags name the variables that
// override JSON and defaults.
type Config struct {
	DatabaseDriver string `env:"DOCLOCKER_DB_DRIVER, overwrite" validate:"oneof=sqlite postgres"`
	DatabaseDSN    string `env:"DOCLOCKER_DB_DSN, overwrite" validate:"required"`

	UploadDir      string `env:"DOCLOCKER_UPLOAD_DIR, overwrite" validate:"required_if=StorageBackend local"`
	StorageBackend string `env:"DOCLOCKER_STORAGE, overwrite" validate:"oneof=local s3"`

	S3Bucket       string `env:"DOCLOCKER_S3_BUCKET, overwrite" validate:"required_if=StorageBackend s3"`
	S3Region       string `env:"DOCLOCKER_S3_REGION, overwrite"`
	S3BaseEndpoint string `env:"DOCLOCKER_S3_ENDPOINT, overwrite" validate:"omitempty,url"`
	S3AccessKey    string `env:"DOCLOCKER_S3_ACCESS_KEY, overwrite"`
	S3SecretKey    string `env:"DOCLOCKER_S3_SECRET_KEY, overwrite"`
	S3Prefix       string `env:"DOCLOCKER_S3_PREFIX, overwrite"`

	PasswordScheme string `env:"DOCLOCKER_PASSWORD_SCHEME, overwrite" validate:"oneof=argon2id bcrypt plain"`

	LogLevel  string `env:"DOCLOCKER_LOG_LEVEL, overwrite" validate:"oneof=debug info warn error"`
	LogFormat string `env:"DOCLOCKER_LOG_FORMAT, overwrite" validate:"oneof=text json"`
	LogFile   string `env:"DOCLOCKER_LOG_FILE, overwrite"`
}

// LoadDefaults populates c with a local, single-file setup.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "doclocker.db"
	c.UploadDir = "uploads"
	c.StorageBackend = StorageLocal
	c.S3Region = "us-east-1"
	c.PasswordScheme = "argon2id"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, JSON, environment and flags, in
// that order. Malformed JSON or flags panic; bad values are returned as an
// error.
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(ctx, cfg, envconfig.OsLookuper()); err != nil {
		return nil, err
	}
	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseEnv(ctx context.Context, cfg *Config, l envconfig.Lookuper) error {
	err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: cfg, Lookuper: l})
	if err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(c)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	problems := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "oneof":
			problems = append(problems, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
		case "required", "required_if":
			problems = append(problems, fmt.Sprintf("%s is required", fe.Field()))
		default:
			problems = append(problems, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}
