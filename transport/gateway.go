package transport

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

// fetchChunkSize is the read granularity used for download progress.
const fetchChunkSize = 32 * 1024

// Gateway is the HTTP transport. Uploads go through the Helix API (which
// funds and submits the Arweave transaction server-side); downloads and price
// queries hit the gateway directly. Request deadlines are driven by the
// caller's context, not by the HTTP client.
type Gateway struct {
	apiBaseURL     string
	gatewayBaseURL string
	session        *auth.Session
	client         *http.Client
}

// NewGateway creates a Gateway transport. session provides the bearer token
// for uploads; it may be nil for download-only use. client may be nil, in
// which case a default client is used.
func NewGateway(apiBaseURL, gatewayBaseURL string, session *auth.Session, client *http.Client) *Gateway {
	if client == nil {
		client = &http.Client{}
	}
	return &Gateway{
		apiBaseURL:     apiBaseURL,
		gatewayBaseURL: gatewayBaseURL,
		session:        session,
		client:         client,
	}
}

// Compile-time interface check.
var _ Transport = (*Gateway)(nil)

type uploadResponse struct {
	TransactionID string `json:"transactionId"`
}

// Store uploads data through the Helix API and returns the Arweave
// transaction ID. Upload progress is reported as the request body is read.
func (g *Gateway) Store(ctx context.Context, data []byte, mimeType string, progress ProgressFunc) (string, error) {
	body := &progressReader{
		r:        bytes.NewReader(data),
		total:    int64(len(data)),
		progress: progress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiBaseURL+"/api/upload", body)
	if err != nil {
		return "", fmt.Errorf("transport: create upload request: %w", err)
	}
	req.ContentLength = int64(len(data))
	req.Header.Set("Content-Type", mimeType)
	if g.session != nil && g.session.Token() != "" {
		req.Header.Set("Authorization", "Bearer "+g.session.Token())
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", wrapTransportErr(ctx, "upload", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: upload HTTP %d: %s", ErrTransportFailure, resp.StatusCode, string(respBody))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode upload response: %w", ErrTransportFailure, err)
	}
	if out.TransactionID == "" {
		return "", fmt.Errorf("%w: upload response missing transaction ID", ErrTransportFailure)
	}
	return out.TransactionID, nil
}

// Fetch downloads the bytes stored under contentID from the gateway.
// Progress is reported per chunk against the response Content-Length when the
// gateway provides one.
func (g *Gateway) Fetch(ctx context.Context, contentID string, progress ProgressFunc) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.gatewayBaseURL+"/"+contentID, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: create fetch request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, wrapTransportErr(ctx, "fetch", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, contentID)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: fetch HTTP %d: %s", ErrTransportFailure, resp.StatusCode, string(respBody))
	}

	var buf bytes.Buffer
	chunk := make([]byte, fetchChunkSize)
	for {
		n, readErr := resp.Body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if progress != nil {
				progress(int64(buf.Len()), resp.ContentLength)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, wrapTransportErr(ctx, "fetch body", readErr)
		}
	}
	return buf.Bytes(), nil
}

// PriceFor queries the gateway for the cost of storing size bytes.
// The gateway answers with a bare integer in the network's smallest unit.
func (g *Gateway) PriceFor(ctx context.Context, size int64) (uint64, error) {
	u := g.gatewayBaseURL + "/price/" + strconv.FormatInt(size, 10)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("transport: create price request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, wrapTransportErr(ctx, "price", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("%w: price HTTP %d", ErrTransportFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return 0, fmt.Errorf("%w: read price: %w", ErrTransportFailure, err)
	}
	price, err := strconv.ParseUint(string(bytes.TrimSpace(body)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: parse price %q: %w", ErrTransportFailure, string(body), err)
	}
	return price, nil
}

// wrapTransportErr keeps context deadline/cancellation errors visible through
// errors.Is so the pipelines can map them to their timeout failure, and wraps
// everything else as a transport failure.
func wrapTransportErr(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("transport: %s: %w", op, ctxErr)
	}
	return fmt.Errorf("%w: %s: %w", ErrTransportFailure, op, err)
}

// progressReader reports bytes consumed from the wrapped reader.
type progressReader struct {
	r        io.Reader
	done     int64
	total    int64
	progress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.done += int64(n)
		if p.progress != nil {
			p.progress(p.done, p.total)
		}
	}
	return n, err
}
