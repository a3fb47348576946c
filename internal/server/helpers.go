package server

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePostID extracts the :id route parameter as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parsePostID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid post ID"))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// attachLabels fills the computed Labels field for each post. Posts with no
// labels get an empty slice rather than null.
func (s *Server) attachLabels(ctx context.Context, posts []*models.Post) error {
	ids := make([]uint, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}

	byPost, err := s.labelRepo.MapByPosts(ctx, ids)
	if err != nil {
		return err
	}
	for _, post := range posts {
		if names, ok := byPost[post.ID]; ok {
			post.Labels = names
		} else {
			post.Labels = []string{}
		}
	}
	return nil
}
