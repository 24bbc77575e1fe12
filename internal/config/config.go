package config

import (
	"delivery-schedule-service/internal/domain"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port         string `valid:"required,port"`
	DatabaseURL  string
	RedisURL     string
	SeedPath     string `valid:"required"`
	SchedulePath string `valid:"required"`
	LogLevel     string `valid:"in(debug|info|warn|error)"`

	CacheSize int
	CacheTTL  time.Duration

	// BatchLimit caps concurrently scheduled runs in one batch request.
	BatchLimit int

	// Default capacity for requests that do not carry their own.
	Capacity domain.Capacity
}

// Get returns the environment value for key or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer: %w", key, raw, err)
	}
	return n, nil
}

func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a duration: %w", key, raw, err)
	}
	return d, nil
}

// Load reads the configuration from the environment and validates it.
// Call godotenv.Load first to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         Get("PORT", "8080"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		RedisURL:     Get("REDIS_URL", ""),
		SeedPath:     Get("SEED_PATH", "data/seeds/deliveries.json"),
		SchedulePath: Get("SCHEDULE_PATH", "schedule.json"),
		LogLevel:     strings.ToLower(Get("LOG_LEVEL", "info")),
	}

	var err error

	if cfg.CacheSize, err = GetInt("CACHE_SIZE", 128); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = GetDuration("CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.BatchLimit, err = GetInt("BATCH_LIMIT", 4); err != nil {
		return nil, err
	}
	if cfg.Capacity.MaxPlanes, err = GetInt("MAX_PLANES", 1); err != nil {
		return nil, err
	}
	if cfg.Capacity.MaxTrucks, err = GetInt("MAX_TRUCKS", 1); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if _, errValidation := govalidator.ValidateStruct(c); errValidation != nil {
		return goerrors.ErrServiceValidation{
			ServiceName: "config",
			Caller:      "Validate",
			Issue:       errValidation,
		}
	}

	if c.CacheSize == 0 {
		return goerrors.ErrValidation{
			Caller: "Validate - Config",
			Issue: goerrors.ErrZeroInput{
				InputName: "CACHE_SIZE",
			},
		}
	}

	if c.CacheSize < 0 {
		return goerrors.ErrValidation{
			Caller: "Validate - Config",
			Issue: goerrors.ErrNegativeInput{
				InputName: "CACHE_SIZE",
			},
		}
	}

	if c.BatchLimit < 0 {
		return goerrors.ErrValidation{
			Caller: "Validate - Config",
			Issue: goerrors.ErrNegativeInput{
				InputName: "BATCH_LIMIT",
			},
		}
	}

	return c.Capacity.Validate()
}
