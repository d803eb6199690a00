package keystore

import (
	"encoding/json"
	"fmt"

	"github.com/helix-storage/helix-go/encryption"
)

// Backup layout: salt(16) || IV(12) || ciphertext || tag(16), where the
// ciphertext is the JSON-encoded txID -> exported key map sealed under a
// key derived from the password and the salt.

// ExportEncrypted serializes the whole store into a password-protected blob.
func (s *Store) ExportEncrypted(password string) ([]byte, error) {
	keys, err := s.ExportAll()
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(keys)
	if err != nil {
		return nil, fmt.Errorf("keystore: encode backup: %w", err)
	}

	salt, err := encryption.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("keystore: %w", err)
	}
	key, err := encryption.DeriveKey(password, salt)
	if err != nil {
		return nil, fmt.Errorf("keystore: %w", err)
	}

	envelope, err := encryption.Encrypt(payload, key)
	if err != nil {
		return nil, fmt.Errorf("keystore: seal backup: %w", err)
	}

	blob := make([]byte, 0, len(salt)+len(envelope))
	blob = append(blob, salt...)
	blob = append(blob, envelope...)
	return blob, nil
}

// ImportEncrypted decrypts a backup produced by ExportEncrypted and merges
// its entries into the store. A wrong password fails authentication and is
// reported as ErrWrongPassword.
func (s *Store) ImportEncrypted(password string, blob []byte) error {
	if len(blob) < encryption.SaltLen+encryption.MinEnvelopeLen {
		return ErrInvalidBackup
	}

	salt := blob[:encryption.SaltLen]
	key, err := encryption.DeriveKey(password, salt)
	if err != nil {
		return fmt.Errorf("keystore: %w", err)
	}

	payload, err := encryption.Decrypt(blob[encryption.SaltLen:], key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrongPassword, err)
	}

	var keys map[string]string
	if err := json.Unmarshal(payload, &keys); err != nil {
		return fmt.Errorf("%w: decode backup: %w", ErrInvalidBackup, err)
	}

	return s.ImportAll(keys)
}
