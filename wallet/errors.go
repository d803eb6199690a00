package wallet

import "errors"

var (
	// ErrInvalidSecretKey indicates secret key material is not exactly 32 bytes.
	ErrInvalidSecretKey = errors.New("wallet: secret key must be 32 bytes")

	// ErrInvalidKeyfile indicates the keyfile is not a valid JSON byte array.
	ErrInvalidKeyfile = errors.New("wallet: invalid keyfile")

	// ErrSigningFailed indicates the message signature could not be produced.
	ErrSigningFailed = errors.New("wallet: signing failed")
)
