// Package wallet implements the keypair identity used to authenticate with
// the Helix API. The wallet never touches file content; it only signs the
// login challenge issued by the auth endpoint.
package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	ec "github.com/bsv-blockchain/go-sdk/primitives/ec"
)

// SecretKeyLen is the length of a raw wallet secret key in bytes.
const SecretKeyLen = 32

// Keypair is a wallet signing identity. The private key stays inside the
// process; only the address and signatures ever leave it.
type Keypair struct {
	priv *ec.PrivateKey
}

// NewKeypair generates a fresh random keypair.
func NewKeypair() (*Keypair, error) {
	priv, err := ec.NewPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("wallet: generate keypair: %w", err)
	}
	return &Keypair{priv: priv}, nil
}

// FromSecretKey builds a keypair from raw 32-byte secret key material.
func FromSecretKey(secret []byte) (*Keypair, error) {
	if len(secret) != SecretKeyLen {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidSecretKey, len(secret))
	}
	priv, _ := ec.PrivateKeyFromBytes(secret)
	return &Keypair{priv: priv}, nil
}

// LoadKeypairFile reads a keypair from a JSON keyfile containing the secret
// key as an array of byte values (the format written by common wallet CLIs).
func LoadKeypairFile(path string) (*Keypair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("wallet: read keyfile: %w", err)
	}

	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: not a JSON byte array", ErrInvalidKeyfile)
	}

	secret := make([]byte, len(raw))
	for i, v := range raw {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: value %d out of byte range", ErrInvalidKeyfile, v)
		}
		secret[i] = byte(v)
	}

	kp, err := FromSecretKey(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeyfile, err)
	}
	return kp, nil
}

// SaveKeypairFile writes the secret key to path in the JSON byte-array
// keyfile format, mode 0600.
func (k *Keypair) SaveKeypairFile(path string) error {
	secret := k.priv.Serialize()
	raw := make([]int, len(secret))
	for i, b := range secret {
		raw[i] = int(b)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("wallet: marshal keyfile: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("wallet: write keyfile: %w", err)
	}
	return nil
}

// Address returns the wallet address: the hex-encoded compressed public key.
// This is the identity the Helix API associates file records with.
func (k *Keypair) Address() string {
	return hex.EncodeToString(k.priv.PubKey().Compressed())
}

// SignMessage signs SHA256(msg) with the wallet private key and returns the
// DER-serialized signature. Used to answer the auth nonce challenge.
func (k *Keypair) SignMessage(msg []byte) ([]byte, error) {
	digest := sha256.Sum256(msg)
	sig, err := k.priv.Sign(digest[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSigningFailed, err)
	}
	return sig.Serialize(), nil
}
