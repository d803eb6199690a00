package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-storage/helix-go/auth"
)

// --- Store tests ---

func TestGatewayStore(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 100*1024)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/upload", r.URL.Path)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, payload, body)

		_ = json.NewEncoder(w).Encode(map[string]string{"transactionId": "abc123"})
	}))
	defer srv.Close()

	session := auth.NewSession("tok", time.Now().Add(time.Hour))
	g := NewGateway(srv.URL, srv.URL, session, srv.Client())

	var lastDone, lastTotal int64
	txid, err := g.Store(context.Background(), payload, "application/octet-stream",
		func(done, total int64) { lastDone, lastTotal = done, total })
	require.NoError(t, err)

	assert.Equal(t, "abc123", txid)
	assert.Equal(t, int64(len(payload)), lastDone, "progress should reach the full payload size")
	assert.Equal(t, int64(len(payload)), lastTotal)
}

func TestGatewayStore_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "funding wallet empty", http.StatusBadGateway)
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, srv.URL, nil, srv.Client())
	_, err := g.Store(context.Background(), []byte("data"), "text/plain", nil)

	assert.ErrorIs(t, err, ErrTransportFailure)
	assert.Contains(t, err.Error(), "502")
}

func TestGatewayStore_MissingTransactionID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, srv.URL, nil, srv.Client())
	_, err := g.Store(context.Background(), []byte("data"), "text/plain", nil)
	assert.ErrorIs(t, err, ErrTransportFailure)
}

func TestGatewayStore_ContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	g := NewGateway(srv.URL, srv.URL, nil, srv.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := g.Store(ctx, []byte("data"), "text/plain", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded,
		"deadline errors must stay visible for the pipeline's timeout mapping")
}

// --- Fetch tests ---

func TestGatewayFetch(t *testing.T) {
	content := bytes.Repeat([]byte("helix"), 20*1024)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/abc123", r.URL.Path)
		_, _ = w.Write(content)
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, srv.URL, nil, srv.Client())

	var calls int
	var lastDone int64
	got, err := g.Fetch(context.Background(), "abc123", func(done, total int64) {
		calls++
		assert.GreaterOrEqual(t, done, lastDone, "progress should be non-decreasing")
		lastDone = done
	})
	require.NoError(t, err)

	assert.Equal(t, content, got)
	assert.Positive(t, calls)
	assert.Equal(t, int64(len(content)), lastDone)
}

func TestGatewayFetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, srv.URL, nil, srv.Client())
	_, err := g.Fetch(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

// --- PriceFor tests ---

func TestGatewayPriceFor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/price/1048576", r.URL.Path)
		_, _ = w.Write([]byte("665242304"))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, srv.URL, nil, srv.Client())
	price, err := g.PriceFor(context.Background(), 1048576)
	require.NoError(t, err)
	assert.Equal(t, uint64(665242304), price)
}

func TestGatewayPriceFor_Garbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not a number"))
	}))
	defer srv.Close()

	g := NewGateway(srv.URL, srv.URL, nil, srv.Client())
	_, err := g.PriceFor(context.Background(), 10)
	assert.ErrorIs(t, err, ErrTransportFailure)
}
