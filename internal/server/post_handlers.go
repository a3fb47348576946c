package server

import (
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/sanitize"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// updatableColumns are the post columns a PATCH body may modify. The
// identifier is stripped unconditionally; anything else is dropped before it
// reaches the store.
var updatableColumns = map[string]struct{}{
	"title":     {},
	"content":   {},
	"type":      {},
	"status":    {},
	"published": {},
}

// ListPosts handles GET /api/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	posts, err := s.postRepo.List(ctx, repository.ListFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
	})
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.attachLabels(ctx, posts); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"items": posts})
}

// SearchPosts handles GET /api/posts/search?q=...
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	ctx := c.Context()

	q := c.Query("q")
	if strings.TrimSpace(q) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Missing query"))
	}

	posts, err := s.postRepo.Search(ctx, q)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if err := s.attachLabels(ctx, posts); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"items": posts})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError())
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	labels, err := s.labelRepo.ListByPost(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	post.Labels = labels
	if post.Labels == nil {
		post.Labels = []string{}
	}

	replies, err := s.replyRepo.ListByPost(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	post.Replies = replies

	return c.JSON(post)
}

// GetReplies handles GET /api/posts/:id/replies
func (s *Server) GetReplies(c *fiber.Ctx) error {
	id, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	replies, err := s.replyRepo.ListByPost(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{"items": replies})
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Title     string    `json:"title"`
		Content   string    `json:"content"`
		Type      string    `json:"type"`
		Status    string    `json:"status"`
		Published int64     `json:"published"`
		Labels    *[]string `json:"labels"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	post := &models.Post{
		Title:     req.Title,
		Content:   sanitize.HTML(req.Content),
		Type:      req.Type,
		Status:    req.Status,
		Published: req.Published,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post.Labels = []string{}
	if req.Labels != nil {
		if err := s.labelRepo.Attach(ctx, post.ID, *req.Labels); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
		post.Labels = *req.Labels
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PATCH /api/posts/:id. Only supplied fields are modified;
// an omitted labels field leaves labels unchanged, while a supplied one is
// reconciled against the stored set.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	id, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if raw, ok := body["labels"]; ok {
		target, ok := toStringSlice(raw)
		if !ok {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Labels must be an array of strings"))
		}
		if err := s.labelRepo.Reconcile(ctx, id, target); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, err)
		}
	}

	fields := make(map[string]any)
	for key, value := range body {
		if _, ok := updatableColumns[key]; ok {
			fields[key] = value
		}
	}
	if content, ok := fields["content"].(string); ok {
		fields["content"] = sanitize.HTML(content)
	}

	if err := s.postRepo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError())
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	labels, err := s.labelRepo.ListByPost(ctx, id)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	post.Labels = labels
	if post.Labels == nil {
		post.Labels = []string{}
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parsePostID(c)
	if err != nil {
		return nil
	}

	if err := s.postRepo.Delete(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError())
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func toStringSlice(raw any) ([]string, bool) {
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok {
			return nil, false
		}
		names = append(names, name)
	}
	return names, true
}
