package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
)

func newTestStorage(t *testing.T) *blobAvatarStorage {
	t.Helper()

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { bucket.Close() })

	return &blobAvatarStorage{
		bucket:        bucket,
		publicBaseURL: "https://cdn.example.com",
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestUpload(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	url, err := storage.Upload(ctx, "alice", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/alice.png", url)

	data, err := storage.bucket.ReadAll(ctx, "avatars/alice.png")
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestUpload_OverwritesPreviousAvatar(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	_, err := storage.Upload(ctx, "alice", "image/png", strings.NewReader("first"))
	require.NoError(t, err)

	_, err = storage.Upload(ctx, "alice", "image/png", strings.NewReader("second"))
	require.NoError(t, err)

	data, err := storage.bucket.ReadAll(ctx, "avatars/alice.png")
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestUpload_RejectsUnsupportedContentType(t *testing.T) {
	storage := newTestStorage(t)

	_, err := storage.Upload(context.Background(), "alice", "application/pdf", strings.NewReader("%PDF"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported avatar content type")
}
