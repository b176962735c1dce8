// Package storage keeps uploaded résumé files in object storage.
package storage

import (
	"context"
	"io"
	"strings"
)

// ObjectStore provides access to object storage.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// URL returns the address clients use to download key.
	URL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
