package encryption

import "errors"

var (
	// ErrInvalidKeyLength indicates imported or derived key material does not
	// decode to exactly 32 bytes.
	ErrInvalidKeyLength = errors.New("encryption: key must be 32 bytes")

	// ErrInvalidSaltLength indicates a key-derivation salt shorter than 16 bytes.
	ErrInvalidSaltLength = errors.New("encryption: salt must be at least 16 bytes")

	// ErrInvalidEnvelope indicates the ciphertext container is malformed.
	// Minimum length: 12 (IV) + 16 (GCM tag) = 28 bytes.
	ErrInvalidEnvelope = errors.New("encryption: invalid envelope")

	// ErrAuthenticationFailed indicates the GCM tag did not verify: tampered
	// ciphertext, wrong key, or corrupted IV. No plaintext is returned.
	ErrAuthenticationFailed = errors.New("encryption: authentication failed")

	// ErrEntropyFailure indicates the secure random source failed.
	ErrEntropyFailure = errors.New("encryption: random source failure")
)
