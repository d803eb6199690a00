package transport

import "errors"

var (
	// ErrTransportFailure indicates the storage network call failed. The
	// wrapped message carries the collaborator's status and body.
	ErrTransportFailure = errors.New("transport: storage network failure")

	// ErrNotFound indicates no content exists for the given content identifier.
	ErrNotFound = errors.New("transport: content not found")
)
