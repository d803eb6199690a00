package config

import "errors"

var (
	// ErrEmptyAPIBaseURL indicates the API base URL is empty.
	ErrEmptyAPIBaseURL = errors.New("config: API base URL must not be empty")

	// ErrInvalidAPIBaseURL indicates the API base URL is malformed.
	ErrInvalidAPIBaseURL = errors.New("config: invalid API base URL")

	// ErrEmptyGatewayBaseURL indicates the gateway base URL is empty.
	ErrEmptyGatewayBaseURL = errors.New("config: gateway base URL must not be empty")

	// ErrInvalidGatewayBaseURL indicates the gateway base URL is malformed.
	ErrInvalidGatewayBaseURL = errors.New("config: invalid gateway base URL")

	// ErrInvalidTimeout indicates the request timeout is not positive.
	ErrInvalidTimeout = errors.New("config: timeout must be positive")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")
)
