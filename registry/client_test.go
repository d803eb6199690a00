package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helix-storage/helix-go/auth"
)

func testSession() *auth.Session {
	return auth.NewSession("tok", time.Now().Add(time.Hour))
}

// --- Create tests ---

func TestCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/files", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req CreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "abc123", req.TransactionID)
		assert.True(t, req.IsEncrypted)

		_ = json.NewEncoder(w).Encode(FileRecord{
			ID:            "f1",
			TransactionID: req.TransactionID,
			MimeType:      req.MimeType,
			Size:          req.Size,
			IsEncrypted:   req.IsEncrypted,
			CreatedAt:     time.Now(),
		})
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(), srv.Client())
	record, err := c.Create(context.Background(), CreateRequest{
		TransactionID: "abc123",
		MimeType:      "text/plain",
		Size:          33,
		IsEncrypted:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "f1", record.ID)
	assert.Equal(t, "abc123", record.TransactionID)
}

func TestCreate_MissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(), srv.Client())
	_, err := c.Create(context.Background(), CreateRequest{TransactionID: "x"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

// --- Get / List / Delete tests ---

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/files/f1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(FileRecord{ID: "f1", TransactionID: "abc123"})
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(), srv.Client())
	record, err := c.Get(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "abc123", record.TransactionID)
}

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/files", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("pageSize"))
		_ = json.NewEncoder(w).Encode(listResponse{
			Files: []FileRecord{{ID: "f1"}, {ID: "f2"}},
			Total: 12,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(), srv.Client())
	files, err := c.List(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "f1", files[0].ID)
}

func TestDelete(t *testing.T) {
	var deleted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		deleted = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(), srv.Client())
	require.NoError(t, c.Delete(context.Background(), "f1"))
	assert.Equal(t, "/api/files/f1", deleted)
}

// --- Share link tests ---

func TestCreateShareLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/share", r.URL.Path)

		var req ShareRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "f1", req.FileID)
		assert.Equal(t, 5, req.MaxDownloads)

		_ = json.NewEncoder(w).Encode(shareResponse{ShareLink: ShareLink{
			ID:           "s1",
			URL:          "https://helix.example/share/s1",
			MaxDownloads: 5,
		}})
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(), srv.Client())
	link, err := c.CreateShareLink(context.Background(), ShareRequest{FileID: "f1", MaxDownloads: 5})
	require.NoError(t, err)
	assert.Equal(t, "s1", link.ID)
	assert.Equal(t, "https://helix.example/share/s1", link.URL)
}

func TestGetShareLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/share/s1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(shareResponse{ShareLink: ShareLink{ID: "s1", DownloadCount: 3}})
	}))
	defer srv.Close()

	c := New(srv.URL, testSession(), srv.Client())
	link, err := c.GetShareLink(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, link.DownloadCount)
}

// --- Error mapping tests ---

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrUnauthorized},
		{"not found", http.StatusNotFound, ErrRecordNotFound},
		{"server error", http.StatusInternalServerError, ErrRegistryFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := New(srv.URL, testSession(), srv.Client())
			_, err := c.Get(context.Background(), "f1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
