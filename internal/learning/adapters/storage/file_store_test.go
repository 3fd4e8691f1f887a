package storage_test

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langmaster/internal/learning/adapters/storage"
	"langmaster/internal/learning/domain/entities"
)

func TestFileStore_SaveAndOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("saved image reads back intact", func(t *testing.T) {
		store, err := storage.NewFileStore(t.TempDir())
		require.NoError(t, err)

		ref, err := store.Save(ctx, "cover.png", strings.NewReader("image-bytes"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(ref, "_cover.png"))

		f, err := store.Open(ctx, ref)
		require.NoError(t, err)
		defer func() { require.NoError(t, f.Close()) }()

		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "image-bytes", string(data))
	})

	t.Run("same original name yields distinct references", func(t *testing.T) {
		store, err := storage.NewFileStore(t.TempDir())
		require.NoError(t, err)

		first, err := store.Save(ctx, "cover.png", strings.NewReader("one"))
		require.NoError(t, err)
		second, err := store.Save(ctx, "cover.png", strings.NewReader("two"))
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("upload path is reduced to its base name", func(t *testing.T) {
		store, err := storage.NewFileStore(t.TempDir())
		require.NoError(t, err)

		ref, err := store.Save(ctx, filepath.Join("some", "dir", "cover.png"), strings.NewReader("bytes"))
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(ref, "_cover.png"))
		assert.NotContains(t, ref, string(filepath.Separator))
	})

	t.Run("missing reference maps to ErrImageNotFound", func(t *testing.T) {
		store, err := storage.NewFileStore(t.TempDir())
		require.NoError(t, err)

		f, err := store.Open(ctx, "missing-ref.png")
		assert.Nil(t, f)
		require.ErrorIs(t, err, entities.ErrImageNotFound)
	})

	t.Run("traversal reference is rejected", func(t *testing.T) {
		store, err := storage.NewFileStore(t.TempDir())
		require.NoError(t, err)

		f, err := store.Open(ctx, "../escape.png")
		assert.Nil(t, f)
		require.ErrorIs(t, err, storage.ErrInvalidReference)
	})
}

func TestFileStore_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("removed image cannot be opened again", func(t *testing.T) {
		store, err := storage.NewFileStore(t.TempDir())
		require.NoError(t, err)

		ref, err := store.Save(ctx, "cover.png", strings.NewReader("bytes"))
		require.NoError(t, err)

		require.NoError(t, store.Remove(ctx, ref))

		f, err := store.Open(ctx, ref)
		assert.Nil(t, f)
		require.ErrorIs(t, err, entities.ErrImageNotFound)
	})

	t.Run("removing a missing reference is a no-op", func(t *testing.T) {
		store, err := storage.NewFileStore(t.TempDir())
		require.NoError(t, err)

		require.NoError(t, store.Remove(ctx, "missing-ref.png"))
	})
}
