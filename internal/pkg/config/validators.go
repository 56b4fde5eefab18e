// internal/pkg/config/validators.go
package config

import (
	"fmt"
	"strings"
)

// Validator checks one aspect of the loaded configuration.
type Validator interface {
	Validate(cfg *Config) error
}

// validatorsFor returns the validation chain for an environment.
// Production adds checks that would be a nuisance during development.
func validatorsFor(env string) []Validator {
	chain := []Validator{&BasicValidator{}}
	if env == "production" {
		chain = append(chain, &ProductionValidator{})
	}
	return chain
}

// BasicValidator enforces the invariants every environment needs.
type BasicValidator struct{}

func (v *BasicValidator) Validate(cfg *Config) error {
	required := []struct {
		name  string
		value string
	}{
		{"database host", cfg.Database.Host},
		{"database name", cfg.Database.Name},
		{"database user", cfg.Database.User},
		{"server port", cfg.Server.Port},
		{"redis host", cfg.Redis.Host},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, f.name)
		}
	}

	if cfg.Database.MinConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("database min_connections %d exceeds max_connections %d",
			cfg.Database.MinConnections, cfg.Database.MaxConnections)
	}
	if cfg.Redis.PoolSize < 1 {
		return fmt.Errorf("redis pool_size must be at least 1, got %d", cfg.Redis.PoolSize)
	}
	if cfg.Security.RateLimitRequests < 1 {
		return fmt.Errorf("rate_limit_requests must be at least 1, got %d", cfg.Security.RateLimitRequests)
	}
	if cfg.FileProcessing.PDFMaxSizeMB < 1 {
		return fmt.Errorf("pdf_max_size_mb must be at least 1, got %d", cfg.FileProcessing.PDFMaxSizeMB)
	}

	return nil
}

// ProductionValidator rejects development conveniences that must never
// reach a production deployment.
type ProductionValidator struct{}

func (v *ProductionValidator) Validate(cfg *Config) error {
	if cfg.Database.Password == "" || strings.HasPrefix(cfg.Database.Password, "stockpos_dev") {
		return fmt.Errorf("%w: production database password", ErrMissingRequiredConfig)
	}
	if cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("database ssl_mode %q is not allowed in production", cfg.Database.SSLMode)
	}
	if !cfg.Security.SecureHeaders {
		return fmt.Errorf("secure headers must stay enabled in production")
	}

	if len(cfg.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("%w: allowed origins", ErrMissingRequiredConfig)
	}
	for _, origin := range cfg.Security.AllowedOrigins {
		if origin == "*" {
			return fmt.Errorf("wildcard CORS origin is not allowed in production")
		}
	}

	if cfg.AWS.UseSecrets && cfg.AWS.SecretsName == "" {
		return fmt.Errorf("%w: secrets manager secret name", ErrMissingRequiredConfig)
	}

	return nil
}
