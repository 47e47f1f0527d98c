package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"kidspace/config"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

var ErrInvalidKey = errors.New("invalid storage key")

// Store persists uploaded solution images and returns the path to reach them
type Store interface {
	Save(ctx context.Context, key, contentType string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// New builds the store selected by STORAGE_DRIVER
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocal(cfg.UploadDir, "/uploads")
	case "s3":
		return NewS3(ctx, cfg)
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
}

// ImageKey builds the object key of a solution image, e.g.
// "solutions/build-a-rocket/4b0c...e1.png"
func ImageKey(challengeTitle, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".png"
	}
	prefix := slug.Make(challengeTitle)
	if prefix == "" {
		prefix = "challenge"
	}
	return "solutions/" + prefix + "/" + uuid.NewString() + ext
}

// cleanKey rejects keys escaping the storage root
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + key)[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}
	return cleaned, nil
}
