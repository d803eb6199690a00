// Package keystore persists the encryption keys returned by uploads, keyed
// by transaction ID. Losing a key means losing the file: the network stores
// only the sealed envelope, so the store supports password-protected backups
// alongside plain CRUD.
package keystore

import (
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/helix-storage/helix-go/encryption"
)

var bucketKeys = []byte("keys")

// Store is a bbolt-backed map from transaction ID to exported encryption key.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the keystore database at dbPath.
// The parent directory is created if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("keystore: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("keystore: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketKeys)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("keystore: create bucket: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Put stores the exported key for a transaction ID, overwriting any previous
// entry. The key must be a well-formed export (base64 of 32 bytes).
func (s *Store) Put(txID, exportedKey string) error {
	if txID == "" {
		return ErrEmptyTxID
	}
	if _, err := encryption.ImportKey(exportedKey); err != nil {
		return fmt.Errorf("keystore: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketKeys).Put([]byte(txID), []byte(exportedKey)); err != nil {
			return fmt.Errorf("keystore: put key: %w", err)
		}
		return nil
	})
}

// Get retrieves the exported key for a transaction ID.
func (s *Store) Get(txID string) (string, error) {
	if txID == "" {
		return "", ErrEmptyTxID
	}

	var exported string
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketKeys).Get([]byte(txID))
		if data == nil {
			return ErrKeyNotFound
		}
		exported = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return exported, nil
}

// Delete removes the key for a transaction ID.
// Returns ErrKeyNotFound if no entry exists.
func (s *Store) Delete(txID string) error {
	if txID == "" {
		return ErrEmptyTxID
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketKeys)
		if b.Get([]byte(txID)) == nil {
			return ErrKeyNotFound
		}
		if err := b.Delete([]byte(txID)); err != nil {
			return fmt.Errorf("keystore: delete key: %w", err)
		}
		return nil
	})
}

// ExportAll returns every stored entry as a txID -> exported key map.
func (s *Store) ExportAll() (map[string]string, error) {
	keys := make(map[string]string)
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketKeys).ForEach(func(k, v []byte) error {
			keys[string(k)] = string(v)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("keystore: export all: %w", err)
	}
	return keys, nil
}

// ImportAll merges the given entries into the store, overwriting existing
// transaction IDs. Malformed keys reject the whole batch before any write.
func (s *Store) ImportAll(keys map[string]string) error {
	for txID, exported := range keys {
		if txID == "" {
			return ErrEmptyTxID
		}
		if _, err := encryption.ImportKey(exported); err != nil {
			return fmt.Errorf("keystore: entry %q: %w", txID, err)
		}
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketKeys)
		for txID, exported := range keys {
			if err := b.Put([]byte(txID), []byte(exported)); err != nil {
				return fmt.Errorf("keystore: import key %q: %w", txID, err)
			}
		}
		return nil
	})
}

// Count returns the number of stored keys.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket(bucketKeys).Stats().KeyN
		return nil
	})
	return count, err
}
