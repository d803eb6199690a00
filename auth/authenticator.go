package auth

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// challengePrefix is the fixed prefix of the message the wallet signs.
// The server verifies the signature over exactly this message.
const challengePrefix = "Sign in to Helix: "

// Signer is the wallet capability the login flow needs: a stable address and
// the ability to sign the challenge message.
type Signer interface {
	Address() string
	SignMessage(msg []byte) ([]byte, error)
}

// Authenticator performs the nonce/signature handshake against the Helix API
// and produces bearer sessions.
type Authenticator struct {
	baseURL string
	client  *http.Client
}

// NewAuthenticator creates an Authenticator for the given API base URL.
func NewAuthenticator(baseURL string, client *http.Client) *Authenticator {
	if client == nil {
		client = &http.Client{}
	}
	return &Authenticator{baseURL: baseURL, client: client}
}

type nonceResponse struct {
	Nonce string `json:"nonce"`
}

type verifyRequest struct {
	Wallet    string `json:"wallet"`
	Signature string `json:"signature"`
	Nonce     string `json:"nonce"`
}

type verifyResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login runs the full handshake: fetch a nonce for the wallet address, sign
// "Sign in to Helix: <nonce>", and exchange the signature for a bearer token.
// When the server does not report an expiry, DefaultSessionTTL is assumed.
func (a *Authenticator) Login(ctx context.Context, signer Signer) (*Session, error) {
	nonce, err := a.fetchNonce(ctx, signer.Address())
	if err != nil {
		return nil, err
	}

	sig, err := signer.SignMessage([]byte(challengePrefix + nonce))
	if err != nil {
		return nil, fmt.Errorf("auth: sign challenge: %w", err)
	}

	return a.verify(ctx, verifyRequest{
		Wallet:    signer.Address(),
		Signature: base64.StdEncoding.EncodeToString(sig),
		Nonce:     nonce,
	})
}

// fetchNonce requests a one-time login nonce for the wallet address.
func (a *Authenticator) fetchNonce(ctx context.Context, address string) (string, error) {
	u := a.baseURL + "/api/auth/nonce?wallet=" + url.QueryEscape(address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("auth: create nonce request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHandshakeFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: HTTP %d: %s", ErrHandshakeFailed, resp.StatusCode, string(body))
	}

	var nr nonceResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return "", fmt.Errorf("%w: decode nonce: %w", ErrInvalidResponse, err)
	}
	if nr.Nonce == "" {
		return "", fmt.Errorf("%w: empty nonce", ErrInvalidResponse)
	}
	return nr.Nonce, nil
}

// verify posts the signed challenge and turns the server's answer into a Session.
func (a *Authenticator) verify(ctx context.Context, vr verifyRequest) (*Session, error) {
	body, err := json.Marshal(vr)
	if err != nil {
		return nil, fmt.Errorf("auth: marshal verify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/api/auth/verify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("auth: create verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandshakeFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrSignatureRejected
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrHandshakeFailed, resp.StatusCode, string(respBody))
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode verify: %w", ErrInvalidResponse, err)
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidResponse)
	}

	expiresAt := out.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = time.Now().Add(DefaultSessionTTL)
	}
	return NewSession(out.Token, expiresAt), nil
}
