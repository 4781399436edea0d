package handlers

import (
	"log/slog"

	"github.com/bewithdhanu/medicine-tracker/internal/apperr"
	"github.com/bewithdhanu/medicine-tracker/internal/dto"
	"github.com/bewithdhanu/medicine-tracker/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// Uploader stores the multipart "file" field of a request.
type Uploader struct {
	store storage.Storage
}

func NewUploader(store storage.Storage) *Uploader {
	return &Uploader{store: store}
}

func (u *Uploader) Save(c *fiber.Ctx, dir string) (*dto.UploadResponse, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, apperr.Validation("file is required")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperr.Internal("failed to read upload", err)
	}
	defer f.Close()

	name := storage.NewFilename(fh.Filename)
	url, err := u.store.Save(c.UserContext(), dir, name, f, fh.Header.Get(fiber.HeaderContentType))
	if err != nil {
		return nil, apperr.Internal("failed to store upload", err)
	}
	return &dto.UploadResponse{Filename: name, URL: url}, nil
}

// Discard removes a saved upload whose owning row could not be updated.
func (u *Uploader) Discard(c *fiber.Ctx, dir string, resp *dto.UploadResponse) {
	if err := u.store.Remove(c.UserContext(), dir, resp.Filename); err != nil {
		slog.Warn("failed to remove orphaned upload", "dir", dir, "filename", resp.Filename, "error", err)
	}
}
