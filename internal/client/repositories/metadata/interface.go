// Package metadata is a flat key/value store backed by the local client
// database. Session credentials and user preferences live here.
package metadata

import (
	"context"
)

// Repository is implemented by SQLiteRepository. Get returns (nil, nil)
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}
