// Package storage persists avatar images in a blob bucket behind a portable
// gocloud.dev URL, so local disk, in-memory and GCS buckets are all one
// config change apart.
package storage

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"contacts/config"
	"contacts/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"

	// Bucket drivers registered for blob.OpenBucket URL schemes.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

// extensions maps the accepted avatar content types to object key suffixes.
// Anything else is rejected before touching the bucket.
var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// blobAvatarStorage implements service.AvatarStorage on a gocloud.dev bucket.
type blobAvatarStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewAvatarStorage opens the configured bucket and closes it on shutdown.
func NewAvatarStorage(params Params) (service.AvatarStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL is not configured")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return &blobAvatarStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Upload writes the avatar under a key derived from the username, so a new
// upload replaces the previous one, and returns the public URL.
func (s *blobAvatarStorage) Upload(ctx context.Context, username, contentType string, body io.Reader) (string, error) {
	ext, ok := extensions[strings.ToLower(contentType)]
	if !ok {
		return "", errors.Errorf("unsupported avatar content type: %s", contentType)
	}

	key := "avatars/" + username + ext

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to open bucket writer")
	}

	if _, err := io.Copy(writer, body); err != nil {
		writer.Close()

		return "", errors.Wrap(err, "failed to write avatar")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "failed to finalize avatar write")
	}

	s.logger.InfoContext(ctx, "Avatar stored",
		slog.String("key", key),
		slog.String("contentType", contentType),
	)

	return s.publicBaseURL + "/" + key, nil
}
