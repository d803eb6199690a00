// Package encryption implements the Helix symmetric encryption envelope.
//
// File content and metadata are sealed with AES-256-GCM. The wire layout is
//
//	iv(12B) || ciphertext || tag(16B)
//
// and is shared bit-exactly with the TypeScript and Python Helix SDKs: an
// envelope produced by any SDK decrypts in any other. Every encryption draws
// a fresh random IV, so sealing the same plaintext twice under the same key
// yields different envelopes that both decrypt to the original bytes.
package encryption

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyLen is the length of a symmetric key in bytes (AES-256).
	KeyLen = 32

	// IVLen is the length of the AES-GCM IV in bytes.
	IVLen = 12

	// TagLen is the length of the GCM authentication tag in bytes.
	TagLen = 16

	// MinEnvelopeLen is the minimum valid envelope length (IV + tag).
	MinEnvelopeLen = IVLen + TagLen

	// SaltLen is the length of a key-derivation salt in bytes.
	SaltLen = 16

	// KDFIterations is the PBKDF2-HMAC-SHA256 iteration count used by
	// DeriveKey. Shared across all Helix SDKs; changing it breaks
	// re-derivation of existing keys.
	KDFIterations = 100_000
)

// Key is a 256-bit symmetric encryption key. Keys are immutable once created
// and are never persisted by this library; the caller owns storage.
type Key []byte

// GenerateKey produces a new random 256-bit key from crypto/rand.
func GenerateKey() (Key, error) {
	key := make([]byte, KeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntropyFailure, err)
	}
	return key, nil
}

// ExportKey encodes raw key bytes as standard base64 for storage or transfer.
// Round-trips exactly with ImportKey.
func ExportKey(key Key) string {
	return base64.StdEncoding.EncodeToString(key)
}

// ImportKey decodes a base64 key string produced by ExportKey.
// Returns ErrInvalidKeyLength if the input is not valid base64 or does not
// decode to exactly 32 bytes.
func ImportKey(s string) (Key, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: not valid base64", ErrInvalidKeyLength)
	}
	if len(raw) != KeyLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(raw))
	}
	return raw, nil
}

// DeriveKey derives a 256-bit key from a password and salt using
// PBKDF2-HMAC-SHA256 with KDFIterations iterations.
//
// The derivation is deterministic: the same (password, salt) pair always
// yields the same key, which is how password-protected content is re-opened.
// The salt must be at least 16 bytes; use GenerateSalt for a fresh one and
// store it alongside whatever the key protects.
func DeriveKey(password string, salt []byte) (Key, error) {
	if len(salt) < SaltLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidSaltLength, len(salt))
	}
	return pbkdf2.Key([]byte(password), salt, KDFIterations, KeyLen, sha256.New), nil
}

// GenerateSalt produces a random 16-byte salt for DeriveKey.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntropyFailure, err)
	}
	return salt, nil
}

// validateKey checks that key material is exactly 32 bytes.
func validateKey(key Key) error {
	if len(key) != KeyLen {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(key))
	}
	return nil
}
