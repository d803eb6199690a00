// Package client orchestrates the Helix upload and download pipelines.
//
// An upload runs encrypt (optional) -> store -> register as one sequential
// operation with phased progress; a download runs fetch -> decrypt (optional).
// Any failure aborts the whole operation with no partial result: a failure
// after the bytes reached the storage network but before the registry record
// was created leaves an orphaned permanent object with no record. The client
// does not attempt to reconcile this; callers needing stronger guarantees can
// re-register idempotently using the returned transaction ID.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/helix-storage/helix-go/auth"
	"github.com/helix-storage/helix-go/config"
	"github.com/helix-storage/helix-go/encryption"
	"github.com/helix-storage/helix-go/registry"
	"github.com/helix-storage/helix-go/transport"
)

// Registry is the file-registry surface the client depends on. The upload
// pipeline calls only Create; the rest back the pass-through conveniences.
type Registry interface {
	Create(ctx context.Context, req registry.CreateRequest) (*registry.FileRecord, error)
	Get(ctx context.Context, fileID string) (*registry.FileRecord, error)
	List(ctx context.Context, page, pageSize int) ([]registry.FileRecord, error)
	Delete(ctx context.Context, fileID string) error
	CreateShareLink(ctx context.Context, req registry.ShareRequest) (*registry.ShareLink, error)
	GetShareLink(ctx context.Context, shareID string) (*registry.ShareLink, error)
}

// Client runs upload and download pipelines against the Helix storage
// network. Collaborators are exported so tests and embedders can substitute
// them; New wires the HTTP defaults.
//
// Independent operations may run concurrently: pipelines share no mutable
// state, and the session is only read.
type Client struct {
	Config    config.Config
	Cipher    encryption.Cipher
	Transport transport.Transport
	Registry  Registry
	Session   *auth.Session

	// Logger receives debug logs when Config.Debug is set. Key material and
	// plaintext are never logged.
	Logger *slog.Logger
}

// New creates a Client with the default HTTP collaborators.
// session may be nil for download-only use.
func New(cfg config.Config, session *auth.Session) (*Client, error) {
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	return &Client{
		Config:    cfg,
		Cipher:    encryption.AESGCM{},
		Transport: transport.NewGateway(cfg.APIBaseURL, cfg.GatewayBaseURL, session, httpClient),
		Registry:  registry.New(cfg.APIBaseURL, session, httpClient),
		Session:   session,
	}, nil
}

// phaseContext derives the per-phase deadline from the configured timeout.
func (c *Client) phaseContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Config.TimeoutSeconds > 0 {
		return context.WithTimeout(ctx, c.Config.RequestTimeout())
	}
	return context.WithCancel(ctx)
}

// mapPhaseErr surfaces phase deadline overruns as ErrTimeout; everything else
// passes through unchanged.
func mapPhaseErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

// debugf logs at debug level when debug logging is enabled.
func (c *Client) debugf(msg string, args ...any) {
	if c.Logger != nil && c.Config.Debug {
		c.Logger.Debug(msg, args...)
	}
}
