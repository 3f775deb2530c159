// Package storage persists uploaded files and generated reports.
// Objects are addressed by a slash-separated name relative to the
// configured root ("messages/3/x.png", "pdfs/form_summary_1.pdf").
package storage

import (
	"context"
	"io"

	"github.com/formhub/formhub-go/config"
)

type Store interface {
	// Save writes the object and returns the path it is reachable at.
	Save(ctx context.Context, name string, contentType string, r io.Reader, size int64) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
}

// NewFromConfig selects the backend from STORAGE_BACKEND.
func NewFromConfig() (Store, error) {
	if config.StorageBackend == "minio" {
		return NewMinioStore()
	}
	return NewLocalStore(config.UploadDir)
}
