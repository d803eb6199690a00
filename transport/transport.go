// Package transport moves bytes to and from the permanent storage network.
// The pipelines treat it as a black box: store bytes and get back a content
// identifier, or fetch bytes by identifier. The default implementation is
// Gateway, which uploads through the Helix API and downloads from an Arweave
// gateway.
package transport

import "context"

// ProgressFunc receives byte-level progress during a transfer.
// bytesTotal is <= 0 when the total is unknown.
type ProgressFunc func(bytesDone, bytesTotal int64)

// Transport stores and fetches file bytes on the storage network.
type Transport interface {
	// Store uploads data and returns the content identifier (the Arweave
	// transaction ID). progress may be nil.
	Store(ctx context.Context, data []byte, mimeType string, progress ProgressFunc) (string, error)

	// Fetch downloads the bytes stored under contentID. progress may be nil.
	Fetch(ctx context.Context, contentID string, progress ProgressFunc) ([]byte, error)

	// PriceFor returns the storage cost for a payload of the given size, in
	// the network's smallest unit. Informational; not used by the pipelines.
	PriceFor(ctx context.Context, size int64) (uint64, error)
}
