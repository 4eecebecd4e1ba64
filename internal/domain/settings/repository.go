package settings

import "context"

// Repository stores raw section values by key. Decoding and healing of
// malformed values happens above this interface.
type Repository interface {
	// GetValue returns the raw serialized value for a key, or
	// shared.ErrNotFound when the key has never been written
	GetValue(ctx context.Context, key string) (string, error)

	// SetValue writes the raw serialized value for a key
	SetValue(ctx context.Context, key, value string) error
}
