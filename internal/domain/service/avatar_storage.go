package service

import (
	"context"
	"io"
)

// AvatarStorage stores avatar images in a blob bucket and returns the public
// URL under which the image is served. Uploading for the same username
// overwrites the previous avatar.
type AvatarStorage interface {
	Upload(ctx context.Context, username string, contentType string, body io.Reader) (string, error)
}
