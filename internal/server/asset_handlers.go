package server

import (
	"bytes"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UploadAsset handles POST /api/assets: the request body is written verbatim
// to the object store under a freshly generated opaque key, recording the
// declared content type. No sanitization or labeling applies to assets.
func (s *Server) UploadAsset(c *fiber.Ctx) error {
	key := uuid.NewString()
	contentType := c.Get(fiber.HeaderContentType)

	if err := s.objects.Put(c.Context(), key, contentType, bytes.NewReader(c.Body())); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": key})
}

// GetAsset handles GET /api/assets/:id, streaming the object back. A Range
// header is honored with a 206 partial response and Content-Range header;
// otherwise the full object is served.
func (s *Server) GetAsset(c *fiber.Ctx) error {
	key := c.Params("id")

	obj, err := s.objects.Get(c.Context(), key, c.Get(fiber.HeaderRange))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError())
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if obj.ContentType != "" {
		c.Set(fiber.HeaderContentType, obj.ContentType)
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	c.Set(fiber.HeaderAcceptRanges, "bytes")

	if obj.ContentRange != "" {
		c.Set(fiber.HeaderContentRange, obj.ContentRange)
		c.Status(fiber.StatusPartialContent)
	} else {
		c.Status(fiber.StatusOK)
	}

	return c.SendStream(obj.Body, int(obj.Size))
}
