package history

import (
	"context"
	"errors"
)

// ErrNoBlob is returned by BlobStore.Get when no value exists under
// the key. First run and a cleared history are indistinguishable.
var ErrNoBlob = errors.New("history blob not found")

// BlobStore persists the entire workout history as one opaque string
// under one well-known key.
type BlobStore interface {
	Put(ctx context.Context, key, blob string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
