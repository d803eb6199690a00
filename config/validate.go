package config

import (
	"fmt"
	"net/url"
)

// ValidateConfig checks that all configuration values are usable and returns
// the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.APIBaseURL == "" {
		return ErrEmptyAPIBaseURL
	}
	if err := validateHTTPURL(cfg.APIBaseURL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAPIBaseURL, err)
	}

	if cfg.GatewayBaseURL == "" {
		return ErrEmptyGatewayBaseURL
	}
	if err := validateHTTPURL(cfg.GatewayBaseURL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGatewayBaseURL, err)
	}

	if cfg.TimeoutSeconds <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

// validateHTTPURL checks that raw parses as an absolute http(s) URL.
func validateHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
