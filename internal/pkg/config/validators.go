// internal/pkg/config/validators.go
package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/robfig/cron/v3"
)

// ErrMissingRequiredConfig is returned when a required setting is empty
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// Validator checks a loaded configuration
type Validator interface {
	Validate(cfg *Config) error
}

var (
	storeDrivers    = []string{"postgres", "sqlite"}
	schedulerModes  = []string{"inprocess", "asynq", "disabled"}
	secretProviders = []string{"env", "aws"}
	storageDrivers  = []string{"s3", "local"}
)

// BasicValidator performs basic configuration validation
type BasicValidator struct{}

// Validate performs basic validation
func (v *BasicValidator) Validate(cfg *Config) error {
	if err := validateRequiredFields(cfg); err != nil {
		return err
	}

	if !slices.Contains(storeDrivers, cfg.Store.Driver) {
		return fmt.Errorf("store driver must be one of %v, got %q", storeDrivers, cfg.Store.Driver)
	}
	if cfg.Store.Driver == "postgres" {
		if cfg.Database.Host == "" || cfg.Database.Name == "" {
			return fmt.Errorf("%w: database host and name", ErrMissingRequiredConfig)
		}
		if cfg.Database.MaxConnections < cfg.Database.MinConnections {
			return fmt.Errorf("database max_connections must be >= min_connections")
		}
	}
	if cfg.Store.Driver == "sqlite" && cfg.Store.SQLitePath == "" {
		return fmt.Errorf("%w: sqlite path", ErrMissingRequiredConfig)
	}

	if !slices.Contains(schedulerModes, cfg.Scheduler.Mode) {
		return fmt.Errorf("scheduler mode must be one of %v, got %q", schedulerModes, cfg.Scheduler.Mode)
	}
	if cfg.Scheduler.Mode != "disabled" {
		if _, err := cron.ParseStandard(cfg.Scheduler.CronSpec); err != nil {
			return fmt.Errorf("invalid scheduler cron spec %q: %w", cfg.Scheduler.CronSpec, err)
		}
	}
	if _, err := cfg.Scheduler.Location(); err != nil {
		return err
	}

	if !slices.Contains(secretProviders, cfg.Secrets.Provider) {
		return fmt.Errorf("secrets provider must be one of %v, got %q", secretProviders, cfg.Secrets.Provider)
	}

	if !slices.Contains(storageDrivers, cfg.AWS.StorageDriver) {
		return fmt.Errorf("storage driver must be one of %v, got %q", storageDrivers, cfg.AWS.StorageDriver)
	}
	if cfg.AWS.StorageDriver == "s3" && cfg.AWS.S3Bucket == "" {
		return fmt.Errorf("%w: s3 bucket", ErrMissingRequiredConfig)
	}

	if cfg.Analytics.ExpiryWindowDays <= 0 {
		return fmt.Errorf("analytics expiry window must be positive")
	}

	if cfg.Redis.PoolSize <= 0 {
		return fmt.Errorf("redis pool_size must be positive")
	}

	if cfg.Security.RateLimitRequests <= 0 {
		return fmt.Errorf("rate_limit_requests must be positive")
	}

	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	if err := (&BasicValidator{}).Validate(cfg); err != nil {
		return err
	}

	if strings.Contains(cfg.Database.Password, "MISSING_") {
		return fmt.Errorf("%w: database password", ErrMissingRequiredConfig)
	}

	if cfg.Store.Driver == "postgres" && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("database SSL must be enabled in production")
	}

	if cfg.Store.Driver == "sqlite" {
		return fmt.Errorf("sqlite store is not supported in production")
	}

	if !cfg.Security.SecureHeaders {
		return fmt.Errorf("secure headers must be enabled in production")
	}

	if len(cfg.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("allowed origins must be configured in production")
	}
	for _, origin := range cfg.Security.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("wildcard origin (*) not allowed in production")
		}
	}

	if cfg.Server.TLSEnabled {
		if cfg.Server.TLSCertFile == "" || cfg.Server.TLSKeyFile == "" {
			return fmt.Errorf("TLS cert and key files must be provided when TLS is enabled")
		}
	}

	return nil
}

// validateRequiredFields uses reflection to check required struct tags
func validateRequiredFields(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	return validateStruct(v, "")
}

func validateStruct(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)
		fieldName := fieldType.Name

		if prefix != "" {
			fieldName = prefix + "." + fieldName
		}

		if required := fieldType.Tag.Get("required"); required == "true" {
			if isZeroValue(field) {
				return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, fieldName)
			}
		}

		if field.Kind() == reflect.Struct {
			if err := validateStruct(field, fieldName); err != nil {
				return err
			}
		}
	}

	return nil
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == "" || strings.HasPrefix(v.String(), "MISSING_")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}
