package client

import "errors"

var (
	// ErrNotAuthenticated indicates the session holds no valid token. The
	// pipeline fails before any transport or registry call is made.
	ErrNotAuthenticated = errors.New("client: not authenticated")

	// ErrTimeout indicates a network-bound phase exceeded its deadline. The
	// operation is aborted and must be restarted by the caller; there is no
	// mid-phase resumption.
	ErrTimeout = errors.New("client: operation timed out")

	// ErrEmptyPayload indicates an attempt to upload zero bytes.
	ErrEmptyPayload = errors.New("client: payload is empty")
)
