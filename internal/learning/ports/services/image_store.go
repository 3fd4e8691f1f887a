package services

import (
	"context"
	"io"
)

// ImageStore persists course images. The persistence layer records only the
// returned reference; the bytes live in the content store.
type ImageStore interface {
	// Save writes the stream under a reference derived from the original
	// filename and returns that reference.
	Save(ctx context.Context, originalName string, r io.Reader) (string, error)

	// Open returns the stored bytes for a reference. A missing file yields
	// entities.ErrImageNotFound.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)

	// Remove deletes the stored file. Removing a missing file is a no-op.
	Remove(ctx context.Context, ref string) error
}
