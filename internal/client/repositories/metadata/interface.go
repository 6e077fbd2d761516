// Package metadata is the local key/value store backing persisted client
// state such as the access token and the selected theme.
package metadata

import (
	"context"
)

// Repository is a flat key/value store. Get of a missing key returns (nil, nil).
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
