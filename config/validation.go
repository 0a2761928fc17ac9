package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks every field and reports all problems at once
func ValidateConfig(cfg *Config) error {
	var errs []error

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("must be a port number, got %q", cfg.ServerPort)})
	}

	if err := validateHTTPURL(cfg.CatalogBaseURL); err != nil {
		errs = append(errs, ValidationError{Field: "CATALOG_BASE_URL", Message: err.Error()})
	}

	if cfg.CatalogTimeout < 0 {
		errs = append(errs, ValidationError{Field: "CATALOG_TIMEOUT", Message: "must not be negative"})
	}

	if cfg.SessionTTL <= 0 {
		errs = append(errs, ValidationError{Field: "SESSION_TTL", Message: "must be greater than 0"})
	}

	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			continue
		}
		if err := validateHTTPURL(origin); err != nil {
			errs = append(errs, ValidationError{Field: "CORS_ALLOWED_ORIGINS", Message: fmt.Sprintf("%s: %v", origin, err)})
		}
	}

	return errors.Join(errs...)
}

func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("scheme must be http or https")
	}
	if u.Host == "" || strings.HasPrefix(u.Host, ":") {
		return errors.New("must include a valid host")
	}
	return nil
}
