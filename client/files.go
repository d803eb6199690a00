package client

import (
	"context"
	"path"
	"strings"

	"github.com/helix-storage/helix-go/encryption"
	"github.com/helix-storage/helix-go/registry"
)

// Registry pass-throughs. These add the configured per-call deadline and are
// otherwise thin; they are not part of the upload/download pipelines.

// ListFiles returns one page of the wallet's file records. page is 1-indexed.
func (c *Client) ListFiles(ctx context.Context, page, pageSize int) ([]registry.FileRecord, error) {
	ctx, cancel := c.phaseContext(ctx)
	defer cancel()
	files, err := c.Registry.List(ctx, page, pageSize)
	return files, mapPhaseErr(err)
}

// GetFile returns a single file record by ID.
func (c *Client) GetFile(ctx context.Context, fileID string) (*registry.FileRecord, error) {
	ctx, cancel := c.phaseContext(ctx)
	defer cancel()
	record, err := c.Registry.Get(ctx, fileID)
	return record, mapPhaseErr(err)
}

// DeleteFile removes a file record. The stored content is permanent and
// remains on the network.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	ctx, cancel := c.phaseContext(ctx)
	defer cancel()
	return mapPhaseErr(c.Registry.Delete(ctx, fileID))
}

// CreateShareLink creates a share link for a file record.
func (c *Client) CreateShareLink(ctx context.Context, req registry.ShareRequest) (*registry.ShareLink, error) {
	ctx, cancel := c.phaseContext(ctx)
	defer cancel()
	link, err := c.Registry.CreateShareLink(ctx, req)
	return link, mapPhaseErr(err)
}

// GetShareLink returns a share link by ID.
func (c *Client) GetShareLink(ctx context.Context, shareID string) (*registry.ShareLink, error) {
	ctx, cancel := c.phaseContext(ctx)
	defer cancel()
	link, err := c.Registry.GetShareLink(ctx, shareID)
	return link, mapPhaseErr(err)
}

// Price returns the storage cost for a payload of the given size.
// Informational only.
func (c *Client) Price(ctx context.Context, size int64) (uint64, error) {
	ctx, cancel := c.phaseContext(ctx)
	defer cancel()
	price, err := c.Transport.PriceFor(ctx, size)
	return price, mapPhaseErr(err)
}

// DecryptFileName recovers the plaintext filename from a record's encrypted
// name using the file's exported encryption key.
func DecryptFileName(encryptedName, exportedKey string) (string, error) {
	key, err := encryption.ImportKey(exportedKey)
	if err != nil {
		return "", err
	}
	return encryption.DecryptString(encryptedName, key)
}

// DetectMimeType guesses a MIME type from the filename extension.
// Unknown extensions fall back to application/octet-stream.
func DetectMimeType(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".txt":
		return "text/plain"
	case ".html", ".htm":
		return "text/html"
	case ".css":
		return "text/css"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".xml":
		return "application/xml"
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".svg":
		return "image/svg+xml"
	case ".mp3":
		return "audio/mpeg"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
