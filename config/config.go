package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every runtime setting of the service.
type Config struct {
	DatabaseDriver string        `env:"DATABASE_DRIVER" envDefault:"postgres"`
	DatabaseURL    string        `env:"DATABASE_URL,required,notEmpty"`
	ConnectTimeout time.Duration `env:"DATABASE_CONNECT_TIMEOUT" envDefault:"5s"`
	ServerPort     int           `env:"SERVER_PORT" envDefault:"8080"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`

	// Organizer auth is off unless both are set.
	JWTSecretKey      string        `env:"JWT_SECRET_KEY"`
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"`
	TokenTTL          time.Duration `env:"TOKEN_TTL" envDefault:"12h"`

	PairingStrategy string `env:"PAIRING_STRATEGY" envDefault:"backtracking"`
	PairingMaxSteps int    `env:"PAIRING_MAX_STEPS" envDefault:"100000"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"30s"`

	R2AccountID       string `env:"R2_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2SecretAccessKey string `env:"R2_SECRET_ACCESS_KEY"`
	R2BucketName      string `env:"R2_BUCKET_NAME"`
	R2PublicBaseURL   string `env:"R2_PUBLIC_BASE_URL"`

	// Six-field cron spec (seconds first). Empty disables scheduled snapshots.
	ArchiveSchedule string `env:"ARCHIVE_SCHEDULE"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the current environment without touching .env.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", withEnvKeys(err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// withEnvKeys names the variable behind each parse failure; env reports the Go field name only.
func withEnvKeys(err error) error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return err
	}
	var keys []string
	for _, e := range agg.Errors {
		var perr env.ParseError
		if !errors.As(e, &perr) {
			continue
		}
		if key := envKey(perr.Name); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return err
	}
	return fmt.Errorf("invalid %s: %w", strings.Join(keys, ", "), err)
}

func envKey(field string) string {
	sf, ok := reflect.TypeOf(Config{}).FieldByName(field)
	if !ok {
		return ""
	}
	key, _, _ := strings.Cut(sf.Tag.Get("env"), ",")
	return key
}

func (c *Config) Validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}
	if c.PairingMaxSteps <= 0 {
		return fmt.Errorf("PAIRING_MAX_STEPS must be positive, got %d", c.PairingMaxSteps)
	}
	if (c.JWTSecretKey == "") != (c.AdminPasswordHash == "") {
		return errors.New("JWT_SECRET_KEY and ADMIN_PASSWORD_HASH must be set together")
	}
	return nil
}

// AuthEnabled reports whether mutating routes require an organizer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecretKey != "" && c.AdminPasswordHash != ""
}
