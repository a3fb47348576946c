package server

import (
	"encoding/json"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// passwordMask replaces the stored admin-password token in read responses.
const passwordMask = "********"

// GetOptions handles GET /api/options: all options as a flat object.
func (s *Server) GetOptions(c *fiber.Ctx) error {
	options, err := s.optionRepo.All(c.Context())
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if _, ok := options[models.OptionAdminPassword]; ok {
		options[models.OptionAdminPassword] = passwordMask
	}

	c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	return c.JSON(options)
}

// UpdateOptions handles POST /api/options. A null value deletes the option
// row; everything else upserts. The split into set/delete operations happens
// here so the store never sees the null sentinel.
func (s *Server) UpdateOptions(c *fiber.Ctx) error {
	var body map[string]*string
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	sets := make(map[string]string)
	var deletes []string
	for key, value := range body {
		if value == nil {
			deletes = append(deletes, key)
		} else {
			sets[key] = *value
		}
	}

	if err := s.optionRepo.Apply(c.Context(), sets, deletes); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
