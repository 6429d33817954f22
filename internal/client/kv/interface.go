// Package kv is the device-local key/value storage used for the user
// directory, the session snapshot, the bearer token and the name history.
package kv

import (
	"context"
)

// Store is a byte-valued key/value store.
//
// Get returns (nil, nil) for a missing key. Update runs fn on the current
// value (nil when missing) and writes the result back in one atomic step;
// returning an error from fn leaves the stored value untouched.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) error
}
