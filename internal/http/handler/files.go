package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"admissions/internal/storage"
)

// FileOpener resolves stored blobs by name.
type FileOpener interface {
	Open(ctx context.Context, name string) (*storage.CachedFile, error)
}

// ServeFile streams an uploaded file. Blob names are write-once, so responses are cacheable.
//
// @Summary Download an uploaded file
// @Tags files
// @Param name path string true "Blob name"
// @Success 200 {file} binary
// @Failure 404 {object} errorPayload
// @Router /files/{name} [get]
func ServeFile(files FileOpener) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := files.Open(c.UserContext(), c.Params("name"))
		switch {
		case errors.Is(err, storage.ErrInvalidName):
			return writeError(c, fiber.StatusBadRequest, "INVALID_NAME", "invalid file name")
		case errors.Is(err, storage.ErrNotExist):
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "file not found")
		case err != nil:
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, f.ContentType)
		c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
		return c.SendStream(f, int(f.Size))
	}
}
