package server

import (
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Install handles POST /api/install: one-time setup. It refuses to run when
// admin credentials already exist, otherwise signs the admin-password token
// and seeds the blog options.
func (s *Server) Install(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		BlogName      string `json:"blogName"`
		AdminUsername string `json:"adminUsername"`
		AdminPassword string `json:"adminPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	existing, err := s.optionRepo.Get(ctx, models.OptionAdminUsername, models.OptionAdminPassword)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if len(existing) > 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Already installed"))
	}

	passwordToken, err := auth.SignPassword(req.AdminUsername, req.AdminPassword)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	seed := map[string]string{
		models.OptionBlogName:      req.BlogName,
		models.OptionBlogPublished: time.Now().UTC().Format(time.RFC3339),
		models.OptionAdminUsername: req.AdminUsername,
		models.OptionAdminPassword: passwordToken,
	}
	if err := s.optionRepo.Apply(ctx, seed, nil); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// Login handles POST /api/login: exchanges the admin username and password
// for a signed 7-day session token.
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		AdminUsername string `json:"adminUsername"`
		AdminPassword string `json:"adminPassword"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	creds, err := s.optionRepo.Get(ctx, models.OptionAdminUsername, models.OptionAdminPassword)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	ok := creds[models.OptionAdminUsername] == req.AdminUsername &&
		auth.VerifyPassword(creds[models.OptionAdminPassword], req.AdminPassword)
	if !ok {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Wrong username or password"))
	}

	if s.config.Secret == "" {
		// The front end treats this as a signal to redirect to setup.
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			&models.AppError{Code: "CONFIG_MISSING", Message: "Secret not set"})
	}

	token, err := auth.SignSession(req.AdminUsername, s.config.Secret, auth.SessionTTL)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"token": token})
}
