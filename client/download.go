package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/helix-storage/helix-go/encryption"
)

// DownloadOptions controls one download.
type DownloadOptions struct {
	// EncryptionKey is the exported key returned by the upload. When empty
	// the fetched bytes are returned as-is, treated as already-plaintext.
	EncryptionKey string

	// OnProgress, when set, receives the operation's progress events.
	OnProgress ProgressFunc
}

// Download fetches the bytes stored under contentID and decrypts them when a
// key is supplied. The pipeline runs downloading -> decrypting (if a key is
// given) -> complete. Decryption failures (ErrAuthenticationFailed,
// ErrInvalidEnvelope, ErrInvalidKeyLength) propagate unchanged.
func (c *Client) Download(ctx context.Context, contentID string, opts DownloadOptions) ([]byte, error) {
	em := newEmitter(opts.OnProgress)
	c.debugf("download started", "operation", em.opID, "transaction", contentID)

	fetchCtx, cancelFetch := c.phaseContext(ctx)
	defer cancelFetch()

	em.emit(PhaseDownloading, 0, 0, 0)
	data, err := c.Transport.Fetch(fetchCtx, contentID, func(done, total int64) {
		em.emitBytes(PhaseDownloading, done, total)
	})
	if err != nil {
		return nil, mapPhaseErr(err)
	}
	em.emit(PhaseDownloading, 100, int64(len(data)), int64(len(data)))

	if opts.EncryptionKey != "" {
		key, err := encryption.ImportKey(opts.EncryptionKey)
		if err != nil {
			return nil, err
		}

		em.emit(PhaseDecrypting, 0, 0, int64(len(data)))
		data, err = c.Cipher.Decrypt(data, key)
		if err != nil {
			return nil, err
		}
		em.emit(PhaseDecrypting, 100, int64(len(data)), int64(len(data)))
		c.debugf("payload decrypted", "operation", em.opID, "size", len(data))
	}

	em.emit(PhaseComplete, 100, int64(len(data)), int64(len(data)))
	return data, nil
}

// DownloadToFile downloads contentID and writes the result to path, creating
// parent directories as needed. On failure the partial file is removed.
func (c *Client) DownloadToFile(ctx context.Context, contentID, path string, opts DownloadOptions) error {
	data, err := c.Download(ctx, contentID, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("client: create local directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("client: write local file: %w", err)
	}
	return nil
}
