package auth

import "errors"

var (
	// ErrHandshakeFailed indicates the nonce or verify request could not be
	// completed.
	ErrHandshakeFailed = errors.New("auth: handshake failed")

	// ErrSignatureRejected indicates the server refused the signed challenge.
	ErrSignatureRejected = errors.New("auth: signature rejected")

	// ErrInvalidResponse indicates the server's response could not be decoded.
	ErrInvalidResponse = errors.New("auth: invalid response")
)
