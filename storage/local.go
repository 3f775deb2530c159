package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps objects as plain files under a root directory so
// the router can expose them read-only via a static mount.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Save(ctx context.Context, name string, contentType string, r io.Reader, size int64) (string, error) {
	path := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return path, nil
}

func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.root, filepath.FromSlash(name)))
}

func (s *LocalStore) Remove(ctx context.Context, name string) error {
	return os.Remove(filepath.Join(s.root, filepath.FromSlash(name)))
}
