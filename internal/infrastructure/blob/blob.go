// Package blob provides the durable holders a store snapshot is written to.
// A holder is a flat keyed byte store; the snapshot lives under one fixed
// key and each Put replaces the previous value whole.
package blob

import "context"

// Store reads and writes byte blobs by key
type Store interface {
	// Put replaces the value under key
	Put(ctx context.Context, key string, data []byte) error

	// Get returns the value under key
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether key holds a value
	Exists(ctx context.Context, key string) (bool, error)
}
