package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Order number sequence backends.
const (
	SequenceBackendPostgres = "postgres"
	SequenceBackendRedis    = "redis"
)

// Config holds the configuration of the order service.
// Tags used:
// - mapstructure: the environment variable viper reads
// - default: default value to set if missing
// - required: if "true", error if missing
type Config struct {
	Environment string `mapstructure:"APP_ENV" default:"development"`
	LogLevel    string `mapstructure:"LOG_LEVEL" default:"info"`
	HTTPPort    int    `mapstructure:"HTTP_PORT" default:"8080"`

	Database       DatabaseConfig       `mapstructure:",squash"`
	Sequence       SequenceConfig       `mapstructure:",squash"`
	Pricing        PricingConfig        `mapstructure:",squash"`
	Catalog        CatalogConfig        `mapstructure:",squash"`
	BuyerDirectory BuyerDirectoryConfig `mapstructure:",squash"`
}

// DatabaseConfig holds the Postgres connection details.
type DatabaseConfig struct {
	Host     string `mapstructure:"DB_HOST" default:"localhost"`
	Port     int    `mapstructure:"DB_PORT" default:"5432"`
	User     string `mapstructure:"DB_USER" required:"true"`
	Password string `mapstructure:"DB_PASSWORD"`
	Name     string `mapstructure:"DB_NAME" required:"true"`
	SSLMode  string `mapstructure:"DB_SSLMODE" default:"disable"`

	// StoreTimeout bounds one order write or sequence allocation.
	StoreTimeout time.Duration `mapstructure:"ORDER_STORE_TIMEOUT" default:"5s"`
}

// DSN returns the connection string for the gorm postgres driver.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// SequenceConfig selects where order number sequence values come from.
type SequenceConfig struct {
	Backend     string `mapstructure:"ORDER_SEQUENCE_BACKEND" default:"postgres"`
	RedisURL    string `mapstructure:"REDIS_URL"`
	MaxAttempts int    `mapstructure:"ORDER_NUMBER_MAX_ATTEMPTS" default:"3"`
}

// PricingConfig holds the flat tax percentage and shipping fee, in minor units.
type PricingConfig struct {
	TaxPercent   int64 `mapstructure:"TAX_PERCENT" default:"0"`
	ShippingCost int64 `mapstructure:"SHIPPING_COST" default:"0"`
}

// CatalogConfig holds the product catalog client settings.
type CatalogConfig struct {
	URL            string        `mapstructure:"CATALOG_URL" required:"true"`
	RequestTimeout time.Duration `mapstructure:"CATALOG_REQUEST_TIMEOUT" default:"2s"`
	LookupTimeout  time.Duration `mapstructure:"CATALOG_LOOKUP_TIMEOUT" default:"5s"`
	MaxRetries     int           `mapstructure:"CATALOG_MAX_RETRIES" default:"3"`
}

// BuyerDirectoryConfig holds the buyer directory client and relay settings.
type BuyerDirectoryConfig struct {
	URL              string        `mapstructure:"BUYER_DIRECTORY_URL" required:"true"`
	RequestTimeout   time.Duration `mapstructure:"BUYER_DIRECTORY_REQUEST_TIMEOUT" default:"2s"`
	RelayInterval    string        `mapstructure:"BUYER_RELAY_INTERVAL" default:"@every 5s"`
	RelayMaxAttempts int           `mapstructure:"BUYER_RELAY_MAX_ATTEMPTS" default:"10"`
	RelayBatchSize   int           `mapstructure:"BUYER_RELAY_BATCH_SIZE" default:"100"`
}

// LoadConfig loads configuration from an optional .env file in dir and from
// environment variables. Variables already set in the environment win over
// the file.
func LoadConfig(dir string) (Config, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()

	var config Config

	processTags(v, &config)

	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return Config{}, err
	}

	if err := config.validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) validate() error {
	var problems []error

	switch c.Sequence.Backend {
	case SequenceBackendPostgres:
	case SequenceBackendRedis:
		if c.Sequence.RedisURL == "" {
			problems = append(problems, errors.New("REDIS_URL is required for the redis sequence backend"))
		}
	default:
		problems = append(problems, fmt.Errorf("ORDER_SEQUENCE_BACKEND %q is not one of postgres, redis", c.Sequence.Backend))
	}

	if c.Pricing.TaxPercent < 0 {
		problems = append(problems, fmt.Errorf("TAX_PERCENT must not be negative, got %d", c.Pricing.TaxPercent))
	}
	if c.Pricing.ShippingCost < 0 {
		problems = append(problems, fmt.Errorf("SHIPPING_COST must not be negative, got %d", c.Pricing.ShippingCost))
	}
	if c.Database.StoreTimeout <= 0 {
		problems = append(problems, fmt.Errorf("ORDER_STORE_TIMEOUT must be positive, got %s", c.Database.StoreTimeout))
	}
	if c.Catalog.MaxRetries < 1 {
		problems = append(problems, fmt.Errorf("CATALOG_MAX_RETRIES must be at least 1, got %d", c.Catalog.MaxRetries))
	}

	return errors.Join(problems...)
}

// processTags binds every tagged field to its environment variable and
// registers its default value.
func processTags(v *viper.Viper, config any) {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			processTags(v, val.Field(i).Addr().Interface())
			continue
		}

		key := field.Tag.Get("mapstructure")
		if key == "" {
			continue
		}

		_ = v.BindEnv(key)

		if defaultValue := field.Tag.Get("default"); defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config any) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && val.Field(i).IsZero() {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}
