package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local keeps files on disk below Dir and serves them under URLPrefix
type Local struct {
	Dir       string
	URLPrefix string
}

// NewLocal creates the upload directory if it doesn't exist
func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &Local{Dir: dir, URLPrefix: urlPrefix}, nil
}

func (l *Local) Save(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	destPath := filepath.Join(l.Dir, filepath.FromSlash(key))

	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return "", err
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}

	return l.URLPrefix + "/" + key, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(l.Dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
