// internal/pkg/config/validators.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrMissingRequiredConfig marks a required setting that resolved empty.
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// Validator checks a loaded configuration for a deployment context.
type Validator interface {
	Validate(cfg *Config) error
}

// BasicValidator performs basic configuration validation
type BasicValidator struct{}

// Validate performs basic validation
func (v *BasicValidator) Validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: API base URL %q is not an absolute URL", ErrMissingRequiredConfig, cfg.API.BaseURL)
	}

	if cfg.Redis.PoolSize <= 0 {
		return fmt.Errorf("redis pool_size must be positive")
	}

	if cfg.API.RequestsPerSecond < 0 {
		return fmt.Errorf("API rate limit cannot be negative")
	}

	if cfg.Import.MaxSizeMB <= 0 {
		return fmt.Errorf("import max_size_mb must be positive")
	}

	return nil
}

// ProductionValidator performs strict validation for production environments
type ProductionValidator struct{}

// Validate performs production-specific validation
func (v *ProductionValidator) Validate(cfg *Config) error {
	if !strings.HasPrefix(cfg.API.BaseURL, "https://") {
		return fmt.Errorf("API base URL must use https in production")
	}

	if strings.Contains(cfg.API.BaseURL, "localhost") || strings.Contains(cfg.API.BaseURL, "127.0.0.1") {
		return fmt.Errorf("API base URL cannot point at localhost in production")
	}

	if cfg.API.SecretsName == "" {
		return fmt.Errorf("%w: API secrets name (workers need a service account in production)", ErrMissingRequiredConfig)
	}

	if !cfg.Import.UseS3 {
		return fmt.Errorf("imports must be staged through S3 in production")
	}

	if cfg.Redis.Password == "" {
		return fmt.Errorf("%w: redis password", ErrMissingRequiredConfig)
	}

	return nil
}

// ValidateFor runs the validators that apply to the configured
// environment.
func ValidateFor(cfg *Config) error {
	validators := []Validator{&BasicValidator{}}
	if cfg.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}

	for _, v := range validators {
		if err := v.Validate(cfg); err != nil {
			return err
		}
	}
	return nil
}
