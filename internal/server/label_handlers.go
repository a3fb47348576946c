package server

import (
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// labelCountTTL is the freshness window for the label-count listing. The
// cache is advisory and never invalidated by write paths.
const labelCountTTL = time.Hour

// GetLabels handles GET /api/labels: label names with usage counts, most
// used first, cached per request URL.
func (s *Server) GetLabels(c *fiber.Ctx) error {
	ctx := c.Context()

	var items []repository.LabelCount
	key := "labels:" + c.OriginalURL()
	err := cache.CacheAside(ctx, key, &items, labelCountTTL, func() error {
		var ferr error
		items, ferr = s.labelRepo.Counts(ctx)
		return ferr
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if items == nil {
		items = []repository.LabelCount{}
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.JSON(fiber.Map{"items": items})
}
