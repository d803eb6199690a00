package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Cipher is the capability interface the upload and download pipelines depend
// on. The default implementation is AESGCM; alternative providers (e.g.
// hardware-backed) can be substituted without touching pipeline logic.
type Cipher interface {
	GenerateKey() (Key, error)
	Encrypt(plaintext []byte, key Key) ([]byte, error)
	Decrypt(envelope []byte, key Key) ([]byte, error)
	DeriveKey(password string, salt []byte) (Key, error)
}

// AESGCM implements Cipher with AES-256-GCM from the standard library.
type AESGCM struct{}

// Compile-time interface check.
var _ Cipher = AESGCM{}

func (AESGCM) GenerateKey() (Key, error)                       { return GenerateKey() }
func (AESGCM) Encrypt(plaintext []byte, key Key) ([]byte, error) { return Encrypt(plaintext, key) }
func (AESGCM) Decrypt(envelope []byte, key Key) ([]byte, error)  { return Decrypt(envelope, key) }
func (AESGCM) DeriveKey(password string, salt []byte) (Key, error) {
	return DeriveKey(password, salt)
}

// Encrypt seals plaintext with AES-256-GCM under key.
// Returns iv(12B) || ciphertext || tag(16B). A fresh random IV is generated
// on every call; the same plaintext never produces the same envelope twice.
func Encrypt(plaintext []byte, key Key) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("encryption: AES cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encryption: GCM creation failed: %w", err)
	}

	iv := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntropyFailure, err)
	}

	// Seal appends ciphertext||tag to the IV: result = iv || ciphertext || tag.
	return gcm.Seal(iv, iv, plaintext, nil), nil
}

// Decrypt opens an envelope produced by Encrypt.
// Input format: iv(12B) || ciphertext || tag(16B).
// Returns ErrInvalidEnvelope for inputs shorter than 28 bytes and
// ErrAuthenticationFailed when the tag does not verify.
func Decrypt(envelope []byte, key Key) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if len(envelope) < MinEnvelopeLen {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d",
			ErrInvalidEnvelope, len(envelope), MinEnvelopeLen)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("encryption: AES cipher creation failed: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("encryption: GCM creation failed: %w", err)
	}

	iv := envelope[:gcm.NonceSize()]
	plaintext, err := gcm.Open(nil, iv, envelope[gcm.NonceSize():], nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}

	// Normalize nil to empty slice for consistency.
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// EncryptString seals a UTF-8 string and returns the envelope as base64.
func EncryptString(text string, key Key) (string, error) {
	envelope, err := Encrypt([]byte(text), key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(envelope), nil
}

// DecryptString opens a base64 envelope produced by EncryptString and returns
// the plaintext as a string. Failure modes match Decrypt; inputs that are not
// valid base64 are reported as ErrInvalidEnvelope.
func DecryptString(encoded string, key Key) (string, error) {
	envelope, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: not valid base64", ErrInvalidEnvelope)
	}
	plaintext, err := Decrypt(envelope, key)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}
