// Package metadata is a small key/value repository over the local SQLite
// "metadata" table. The credential store is its only user.
package metadata

import (
	"context"
)

// Repository reads and writes raw values by key. Get returns (nil, nil) for
// a missing key. List returns every stored pair.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}
