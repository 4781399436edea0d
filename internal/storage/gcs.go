package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"

	"cloud.google.com/go/storage"
)

// GCSStorage writes uploads as objects in a Cloud Storage bucket.
type GCSStorage struct {
	client *storage.Client
	bucket string
}

func NewGCSStorage(client *storage.Client, bucket string) *GCSStorage {
	return &GCSStorage{client: client, bucket: bucket}
}

func (s *GCSStorage) objectName(dir, filename string) string {
	return path.Join(dir, path.Base(filename))
}

func (s *GCSStorage) Save(ctx context.Context, dir, filename string, r io.Reader, contentType string) (string, error) {
	name := s.objectName(dir, filename)
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("while writing object %q: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("while closing object %q: %w", name, err)
	}
	return PublicURL(s.bucket, name), nil
}

func (s *GCSStorage) Remove(ctx context.Context, dir, filename string) error {
	name := s.objectName(dir, filename)
	err := s.client.Bucket(s.bucket).Object(name).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("while deleting object %q: %w", name, err)
	}
	return nil
}

func PublicURL(bucket, name string) string {
	return "https://storage.googleapis.com/" + url.PathEscape(bucket) + "/" + name
}
