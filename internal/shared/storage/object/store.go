package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving binary objects.
// Keys are caller-chosen paths namespaced under the owning user's id.
type ObjectStore interface {
	// Bucket returns the designated logical bucket name served by this store.
	Bucket() string
	Put(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}
