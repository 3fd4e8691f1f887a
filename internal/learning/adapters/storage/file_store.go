// Package storage implements the image store over a local content directory.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"langmaster/internal/learning/domain/entities"
	svc "langmaster/internal/learning/ports/services"
	"langmaster/pkg/logger"
)

// ErrInvalidReference is returned for references that would escape the
// content directory.
var ErrInvalidReference = errors.New("invalid image reference")

// FileStore keeps course images as plain files in a content directory.
// References are the stored filenames, prefixed with a random component so
// two uploads with the same original name never collide.
type FileStore struct {
	dir string
}

// NewFileStore creates the store and its content directory.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating content directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

var _ svc.ImageStore = (*FileStore)(nil)

// Save writes the stream to the content directory and returns the stored
// reference.
func (s *FileStore) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	log := logger.Log(ctx).With(zap.String("store", "image"), zap.String("method", "Save"))

	base := filepath.Base(originalName)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, originalName)
	}
	ref := uuid.New().String() + "_" + base

	f, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		log.Error(ctx, "error creating image file", zap.Error(err))
		return "", fmt.Errorf("error creating image file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(filepath.Join(s.dir, ref))
		log.Error(ctx, "error writing image file", zap.Error(err))
		return "", fmt.Errorf("error writing image file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(filepath.Join(s.dir, ref))
		log.Error(ctx, "error closing image file", zap.Error(err))
		return "", fmt.Errorf("error closing image file: %w", err)
	}

	log.Debug(ctx, "image stored", zap.String("ref", ref))
	return ref, nil
}

// Open returns the stored bytes for a reference.
func (s *FileStore) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	log := logger.Log(ctx).With(zap.String("store", "image"), zap.String("method", "Open"))

	path, err := s.refPath(ref)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Warn(ctx, "image file missing for stored reference", zap.String("ref", ref))
			return nil, entities.ErrImageNotFound
		}
		log.Error(ctx, "error opening image file", zap.Error(err))
		return nil, fmt.Errorf("error opening image file: %w", err)
	}

	return f, nil
}

// Remove deletes the stored file; a missing file is not an error.
func (s *FileStore) Remove(ctx context.Context, ref string) error {
	log := logger.Log(ctx).With(zap.String("store", "image"), zap.String("method", "Remove"))

	path, err := s.refPath(ref)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Error(ctx, "error removing image file", zap.Error(err))
		return fmt.Errorf("error removing image file: %w", err)
	}

	return nil
}

// refPath resolves a reference inside the content directory, rejecting
// path traversal.
func (s *FileStore) refPath(ref string) (string, error) {
	if ref == "" || ref != filepath.Base(ref) || strings.Contains(ref, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return filepath.Join(s.dir, ref), nil
}
