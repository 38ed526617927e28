package handlers

import (
	"context"
	"io"
)

// ObjectStore is the slice of the payload store the handlers need. MinIO
// satisfies it in production; tests substitute an in-memory fake.
type ObjectStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, objectName string) (io.ReadCloser, error)
	Delete(ctx context.Context, objectName string) error
}
