package keystore

import "errors"

var (
	// ErrKeyNotFound is returned when no key is stored for a transaction ID.
	ErrKeyNotFound = errors.New("keystore: key not found")

	// ErrEmptyTxID is returned when a transaction ID is empty.
	ErrEmptyTxID = errors.New("keystore: transaction id is empty")

	// ErrInvalidBackup is returned when a backup blob is malformed.
	ErrInvalidBackup = errors.New("keystore: invalid backup")

	// ErrWrongPassword is returned when a backup fails to decrypt.
	ErrWrongPassword = errors.New("keystore: wrong password")
)
