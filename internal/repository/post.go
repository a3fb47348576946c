// Package repository contains the data access layer over the relational store.
package repository

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ListFilter narrows a post listing. Empty fields are not applied.
type ListFilter struct {
	Type   string
	Status string
}

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Post, error)
	Search(ctx context.Context, query string) ([]*models.Post, error)
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter ListFilter) ([]*models.Post, error) {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var posts []*models.Post
	err := q.Order("published DESC").Find(&posts).Error
	return posts, err
}

// Search runs the public search. A whitespace-delimited "label:<name>" token
// switches to a label join; only the first such token is honored. Free-text
// matches are case-insensitive substring matches on title, restricted to
// published posts (pages and drafts are never text-searchable).
func (r *postRepository) Search(ctx context.Context, query string) ([]*models.Post, error) {
	words := strings.Fields(query)
	for _, word := range words {
		if name, ok := strings.CutPrefix(word, "label:"); ok {
			return r.searchByLabel(ctx, name)
		}
	}

	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Where("type = ? AND status = ?", models.TypePost, models.StatusPublish).
		Where("LOWER(title) LIKE ?", "%"+strings.ToLower(strings.Join(words, " "))+"%").
		Order("published DESC").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) searchByLabel(ctx context.Context, name string) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Joins("INNER JOIN labels ON labels.post_id = posts.id AND labels.name = ?", name).
		Where("posts.status = ?", models.StatusPublish).
		Order("posts.published DESC").
		Find(&posts).Error
	return posts, err
}

// Update applies a partial update: only the supplied fields are modified.
// The identifier is always stripped and the updated timestamp is always
// refreshed; published is never touched unless explicitly supplied.
func (r *postRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	delete(fields, "id")
	fields["updated"] = time.Now().UnixMilli()

	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the post and cascades to its labels and replies in a single
// transaction, so behavior does not depend on the driver's FK enforcement.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Label{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
