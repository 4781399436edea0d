package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalStorage writes files below Root. URLs are rooted at URLPrefix,
// which the HTTP server maps back to Root.
type LocalStorage struct {
	Root      string
	URLPrefix string
}

func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{Root: root, URLPrefix: "/uploads"}
}

func (s *LocalStorage) Save(_ context.Context, dir, filename string, r io.Reader, _ string) (string, error) {
	target := filepath.Join(s.Root, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("while creating upload dir: %w", err)
	}

	f, err := os.Create(filepath.Join(target, filepath.Base(filename)))
	if err != nil {
		return "", fmt.Errorf("while creating upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("while writing upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("while closing upload file: %w", err)
	}

	return path.Join(s.URLPrefix, dir, filepath.Base(filename)), nil
}

func (s *LocalStorage) Remove(_ context.Context, dir, filename string) error {
	err := os.Remove(filepath.Join(s.Root, dir, filepath.Base(filename)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("while removing upload file: %w", err)
	}
	return nil
}
