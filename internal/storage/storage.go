// Package storage saves uploaded images under a directory ("users" or
// "medicines") and returns the URL they are served from.
package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

const (
	DirUsers     = "users"
	DirMedicines = "medicines"
)

type Storage interface {
	Save(ctx context.Context, dir, filename string, r io.Reader, contentType string) (string, error)
	// Remove deletes a saved file. A file that is already gone is not an error.
	Remove(ctx context.Context, dir, filename string) error
}

// NewFilename keeps the extension of the uploaded name and replaces the
// rest with a random UUID.
func NewFilename(original string) string {
	return uuid.NewString() + filepath.Ext(original)
}
