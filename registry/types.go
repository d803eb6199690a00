// Package registry is the client for the Helix file-registry API: the
// per-wallet metadata records that map Arweave transactions to files, plus
// share links. The upload pipeline calls only Create; everything else is a
// pass-through convenience.
package registry

import "time"

// FileRecord is a registry entry for one stored file.
type FileRecord struct {
	ID            string     `json:"id"`
	TransactionID string     `json:"transactionId"`
	EncryptedName string     `json:"encryptedName,omitempty"`
	MimeType      string     `json:"mimeType"`
	Size          int64      `json:"size"`
	IsEncrypted   bool       `json:"isEncrypted"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// CreateRequest is the payload for registering an uploaded file.
// EncryptedName, when set, is a base64 encryption envelope of the filename;
// the registry never sees plaintext names for encrypted files.
type CreateRequest struct {
	TransactionID string `json:"transactionId"`
	EncryptedName string `json:"encryptedName,omitempty"`
	MimeType      string `json:"mimeType"`
	Size          int64  `json:"size"`
	IsEncrypted   bool   `json:"isEncrypted"`
}

// ShareRequest is the payload for creating a share link.
// EncryptedKey, when set, is the file's encryption key sealed for the
// recipient; the registry stores it opaquely.
type ShareRequest struct {
	FileID       string     `json:"fileId"`
	ExpiresAt    *time.Time `json:"expiresAt,omitempty"`
	MaxDownloads int        `json:"maxDownloads,omitempty"`
	EncryptedKey string     `json:"encryptedKey,omitempty"`
}

// ShareLink is a registry share-link record.
type ShareLink struct {
	ID            string     `json:"id"`
	URL           string     `json:"url"`
	DownloadCount int        `json:"downloadCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	MaxDownloads  int        `json:"maxDownloads,omitempty"`
}

// listResponse is the wire shape of the list endpoint.
type listResponse struct {
	Files []FileRecord `json:"files"`
	Total int          `json:"total"`
}

// shareResponse is the wire shape of the share endpoints.
type shareResponse struct {
	ShareLink ShareLink `json:"shareLink"`
}
