package client

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/helix-storage/helix-go/encryption"
	"github.com/helix-storage/helix-go/registry"
)

// UploadOptions controls one upload. The zero value encrypts with a fresh
// key, matching the default of the other Helix SDKs; set DisableEncryption to
// store plaintext.
type UploadOptions struct {
	// Name is the original filename. For encrypted uploads it is stored in
	// the registry only as an encryption envelope; the plaintext name never
	// leaves the client.
	Name string

	// MimeType is the content type. Detected from Name's extension when empty.
	MimeType string

	// DisableEncryption stores the bytes as-is, publicly readable forever.
	DisableEncryption bool

	// OnProgress, when set, receives the operation's progress events.
	OnProgress ProgressFunc
}

// UploadResult is the outcome of a completed upload.
type UploadResult struct {
	// TransactionID is the content identifier on the storage network.
	TransactionID string

	// EncryptionKey is the exported (base64) key, present iff the upload was
	// encrypted. This is the caller's only copy; it is never persisted
	// server-side and losing it makes the content unrecoverable.
	EncryptionKey string

	// ArweaveURL is the permanent gateway URL of the stored bytes.
	ArweaveURL string

	// FileID is the registry record identifier.
	FileID string
}

// Upload stores data permanently, encrypted by default, and registers its
// metadata. The pipeline runs encrypting (if enabled) -> uploading ->
// registering -> complete; a failure at any phase aborts the operation with
// no partial result.
func (c *Client) Upload(ctx context.Context, data []byte, opts UploadOptions) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	if c.Session == nil || !c.Session.IsValid(time.Now()) {
		return nil, ErrNotAuthenticated
	}

	em := newEmitter(opts.OnProgress)
	c.debugf("upload started", "operation", em.opID, "size", len(data))

	payload := data
	var exportedKey, encryptedName string

	if !opts.DisableEncryption {
		em.emit(PhaseEncrypting, 0, 0, int64(len(data)))

		key, err := c.Cipher.GenerateKey()
		if err != nil {
			return nil, err
		}
		payload, err = c.Cipher.Encrypt(data, key)
		if err != nil {
			return nil, err
		}
		// The filename is sealed under the same key so registry metadata
		// does not leak it.
		nameEnvelope, err := c.Cipher.Encrypt([]byte(opts.Name), key)
		if err != nil {
			return nil, err
		}
		encryptedName = base64.StdEncoding.EncodeToString(nameEnvelope)
		exportedKey = encryption.ExportKey(key)

		em.emit(PhaseEncrypting, 100, int64(len(data)), int64(len(data)))
		c.debugf("payload encrypted", "operation", em.opID, "envelope_size", len(payload))
	}

	mimeType := opts.MimeType
	if mimeType == "" {
		mimeType = DetectMimeType(opts.Name)
	}

	// Uploading phase.
	storeCtx, cancelStore := c.phaseContext(ctx)
	defer cancelStore()

	em.emit(PhaseUploading, 0, 0, int64(len(payload)))
	txID, err := c.Transport.Store(storeCtx, payload, mimeType, func(done, total int64) {
		em.emitBytes(PhaseUploading, done, total)
	})
	if err != nil {
		return nil, mapPhaseErr(err)
	}
	em.emit(PhaseUploading, 100, int64(len(payload)), int64(len(payload)))
	c.debugf("stored on network", "operation", em.opID, "transaction", txID)

	// Registering phase. A failure here strands the stored object; see the
	// package comment.
	regCtx, cancelReg := c.phaseContext(ctx)
	defer cancelReg()

	em.emit(PhaseRegistering, 0, 0, 0)
	record, err := c.Registry.Create(regCtx, registry.CreateRequest{
		TransactionID: txID,
		EncryptedName: encryptedName,
		MimeType:      mimeType,
		Size:          int64(len(payload)),
		IsEncrypted:   !opts.DisableEncryption,
	})
	if err != nil {
		return nil, mapPhaseErr(err)
	}
	em.emit(PhaseRegistering, 100, 0, 0)

	em.emit(PhaseComplete, 100, int64(len(payload)), int64(len(payload)))
	c.debugf("upload complete", "operation", em.opID, "file", record.ID)

	return &UploadResult{
		TransactionID: txID,
		EncryptionKey: exportedKey,
		ArweaveURL:    c.Config.GatewayBaseURL + "/" + txID,
		FileID:        record.ID,
	}, nil
}

// UploadFile reads path and uploads its contents. When opts.Name is empty the
// file's base name is used.
func (c *Client) UploadFile(ctx context.Context, path string, opts UploadOptions) (*UploadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("client: read file: %w", err)
	}
	if opts.Name == "" {
		opts.Name = filepath.Base(path)
	}
	return c.Upload(ctx, data, opts)
}
