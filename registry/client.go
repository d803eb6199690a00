package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/helix-storage/helix-go/auth"
)

// Client talks to the Helix file-registry REST API. All calls carry the
// session's bearer token. Request deadlines come from the caller's context.
type Client struct {
	baseURL string
	session *auth.Session
	client  *http.Client
}

// New creates a registry client. client may be nil, in which case a default
// HTTP client is used.
func New(baseURL string, session *auth.Session, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{baseURL: baseURL, session: session, client: client}
}

// Create registers an uploaded file and returns the new record.
func (c *Client) Create(ctx context.Context, req CreateRequest) (*FileRecord, error) {
	var record FileRecord
	if err := c.do(ctx, http.MethodPost, "/api/files", req, &record); err != nil {
		return nil, err
	}
	if record.ID == "" {
		return nil, fmt.Errorf("%w: create response missing record ID", ErrInvalidResponse)
	}
	return &record, nil
}

// Get returns a single file record by ID.
func (c *Client) Get(ctx context.Context, fileID string) (*FileRecord, error) {
	var record FileRecord
	if err := c.do(ctx, http.MethodGet, "/api/files/"+fileID, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns one page of the wallet's file records. page is 1-indexed.
func (c *Client) List(ctx context.Context, page, pageSize int) ([]FileRecord, error) {
	path := "/api/files?page=" + strconv.Itoa(page) + "&pageSize=" + strconv.Itoa(pageSize)
	var out listResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Files, nil
}

// Delete removes a file record. The stored Arweave content is permanent and
// is not affected.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	return c.do(ctx, http.MethodDelete, "/api/files/"+fileID, nil, nil)
}

// CreateShareLink creates a share link for a file record.
func (c *Client) CreateShareLink(ctx context.Context, req ShareRequest) (*ShareLink, error) {
	var out shareResponse
	if err := c.do(ctx, http.MethodPost, "/api/share", req, &out); err != nil {
		return nil, err
	}
	return &out.ShareLink, nil
}

// GetShareLink returns a share link by ID.
func (c *Client) GetShareLink(ctx context.Context, shareID string) (*ShareLink, error) {
	var out shareResponse
	if err := c.do(ctx, http.MethodGet, "/api/share/"+shareID, nil, &out); err != nil {
		return nil, err
	}
	return &out.ShareLink, nil
}

// do sends one API request: marshal the payload, attach the bearer token,
// check the status, decode the result. A nil result discards the body.
func (c *Client) do(ctx context.Context, method, path string, payload, result interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("registry: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("registry: create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil && c.session.Token() != "" {
		req.Header.Set("Authorization", "Bearer "+c.session.Token())
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("registry: %s %s: %w", method, path, ctxErr)
		}
		return fmt.Errorf("%w: %w", ErrRegistryFailure, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrRecordNotFound, path)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: HTTP %d: %s", ErrRegistryFailure, resp.StatusCode, string(respBody))
	}

	if result == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrInvalidResponse, err)
	}
	return nil
}
