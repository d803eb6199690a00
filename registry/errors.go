package registry

import "errors"

var (
	// ErrRegistryFailure indicates the registry API call failed. The wrapped
	// message carries the server's status and body.
	ErrRegistryFailure = errors.New("registry: request failed")

	// ErrUnauthorized indicates the bearer token was missing, invalid, or
	// not authorized for the record.
	ErrUnauthorized = errors.New("registry: unauthorized")

	// ErrRecordNotFound indicates no record exists for the given ID.
	ErrRecordNotFound = errors.New("registry: record not found")

	// ErrInvalidResponse indicates the server's response could not be decoded.
	ErrInvalidResponse = errors.New("registry: invalid response")
)
