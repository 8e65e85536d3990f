package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded item images live. Only a local-disk
// backend exists; the interface keeps handlers independent of it.
type Storage interface {
	// Save stores a file at the given relative path.
	Save(ctx context.Context, path string, reader io.Reader) error

	// Delete removes a file; deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// Exists reports whether a file is present.
	Exists(ctx context.Context, path string) (bool, error)

	// URL returns the public URL a client uses to fetch the file.
	URL(path string) string
}

// Config holds storage configuration.
type Config struct {
	BasePath string // local directory files are written under
	BaseURL  string // public URL prefix, e.g. /uploads
}
