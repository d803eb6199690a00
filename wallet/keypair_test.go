package wallet

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Keypair construction tests ---

func TestNewKeypair(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	addr := kp.Address()
	raw, err := hex.DecodeString(addr)
	require.NoError(t, err, "address should be hex")
	assert.Len(t, raw, 33, "address should be a compressed public key")
}

func TestFromSecretKey_RejectsBadLength(t *testing.T) {
	tests := []struct {
		name  string
		bytes int
	}{
		{"empty", 0},
		{"too short", 16},
		{"too long", 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSecretKey(make([]byte, tt.bytes))
			assert.ErrorIs(t, err, ErrInvalidSecretKey)
		})
	}
}

// --- Keyfile round-trip tests ---

func TestKeypairFile_RoundTrip(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, kp.SaveKeypairFile(path))

	loaded, err := LoadKeypairFile(path)
	require.NoError(t, err)
	assert.Equal(t, kp.Address(), loaded.Address(), "reloaded keypair should have same address")
}

func TestLoadKeypairFile_Missing(t *testing.T) {
	_, err := LoadKeypairFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadKeypairFile_Malformed(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"not json", "hello"},
		{"wrong shape", `{"secret": "abc"}`},
		{"out of range", "[1, 2, 999]"},
		{"wrong length", "[1, 2, 3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := LoadKeypairFile(path)
			assert.ErrorIs(t, err, ErrInvalidKeyfile)
		})
	}
}

// --- Signing tests ---

func TestSignMessage(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	sig, err := kp.SignMessage([]byte("Sign in to Helix: abc123"))
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	// Signing with a different keypair yields a different signature.
	other, err := NewKeypair()
	require.NoError(t, err)
	otherSig, err := other.SignMessage([]byte("Sign in to Helix: abc123"))
	require.NoError(t, err)
	assert.NotEqual(t, sig, otherSig)
}
